package constant

// Remote service locations.
const (
	// APIBaseURL is the default root of the MangaDex REST API.
	APIBaseURL = "https://api.mangadex.org/"

	// SiteURL is the public website, used to open titles in a browser.
	SiteURL = "https://mangadex.org"

	// UploadsURL serves cover art.
	UploadsURL = "https://uploads.mangadex.org"

	// RepositoryURL is the project home.
	RepositoryURL = "https://github.com/dexcli/dex"

	// ReleasesURL is queried for the latest published version of the CLI.
	ReleasesURL = "https://api.github.com/repos/dexcli/dex/releases/latest"
)
