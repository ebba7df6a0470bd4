package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"

	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/filesystem"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/network"
	"github.com/dexcli/dex/open"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/util"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chapterCmd)
}

var chapterCmd = &cobra.Command{
	Use:     "chapter",
	Aliases: []string{"ch"},
	Short:   "Inspect chapters and track reading progress",
}

func init() {
	chapterCmd.AddCommand(chapterShowCmd)
}

var chapterShowCmd = &cobra.Command{
	Use:   "show <id|link>",
	Short: "Show the details of a chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		c, err := client.GetChapter(cmd.Context(), idArg(args))
		handleErr(err)

		attrs := c.Data.Attributes
		if manga := c.Related(mangadex.TypeManga); len(manga) > 0 {
			cmd.Println(style.Title(titleOf(cmd.Context(), client, manga[0])))
		}
		cmd.Println(style.Bold(lo.Ternary(attrs.Label() != "", attrs.Label(), "Oneshot")))
		cmd.Printf("%s %s\n", style.Fg(color.Blue)("Language:"), attrs.TranslatedLanguage)
		cmd.Printf("%s %s\n", style.Fg(color.Blue)("Pages:"), util.Quantify(len(attrs.Data), "page", "pages"))
		if !attrs.PublishAt.IsZero() {
			cmd.Printf("%s %s\n", style.Fg(color.Blue)("Published:"), attrs.PublishAt.Format("2006-01-02"))
		}
		cmd.Printf("%s %s\n", icon.Get(icon.Link), style.Fg(style.SecondaryColor)(open.ChapterURL(c.Data.ID)))
	},
}

func init() {
	chapterCmd.AddCommand(chapterReadCmd, chapterUnreadCmd)
}

var chapterReadCmd = &cobra.Command{
	Use:   "read <id|link>...",
	Short: "Mark chapters as read",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		markChapters(cmd, args, (*mangadex.Client).MarkChapterRead, "read")
	},
}

var chapterUnreadCmd = &cobra.Command{
	Use:   "unread <id|link>...",
	Short: "Mark chapters as unread",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		markChapters(cmd, args, (*mangadex.Client).MarkChapterUnread, "unread")
	},
}

func markChapters(cmd *cobra.Command, args []string, mark func(*mangadex.Client, context.Context, uuid.UUID) error, state string) {
	client, err := newSessionClient(cmd.Context())
	handleErr(err)

	for _, arg := range args {
		id, err := parseID(arg)
		handleErr(err)
		handleErr(mark(client, cmd.Context(), id))
		cmd.Printf("%s %s marked %s\n", style.Fg(color.Green)(icon.Get(icon.Mark)), id, state)
	}
}

func init() {
	chapterCmd.AddCommand(chapterPagesCmd)
	chapterPagesCmd.Flags().BoolP("data-saver", "d", false, "Use compressed images")
	chapterPagesCmd.Flags().Bool("port443", false, "Only use servers listening on port 443")
}

var chapterPagesCmd = &cobra.Command{
	Use:   "pages <id|link>",
	Short: "Print the image URLs of a chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		c, err := client.GetChapter(cmd.Context(), idArg(args))
		handleErr(err)

		urls, err := pageURLs(cmd, client, c)
		handleErr(err)

		for _, u := range urls {
			cmd.Println(u)
		}
	},
}

// pageURLs asks an at-home server for the chapter's images.
func pageURLs(cmd *cobra.Command, client *mangadex.Client, c mangadex.ChapterData) ([]string, error) {
	server, err := client.AtHomeServer(cmd.Context(), c.Data.ID, lo.Must(cmd.Flags().GetBool("port443")))
	if err != nil {
		return nil, err
	}

	return server.PageURLs(c.Data.Attributes, lo.Must(cmd.Flags().GetBool("data-saver"))), nil
}

func init() {
	chapterCmd.AddCommand(chapterDownloadCmd)
	chapterDownloadCmd.Flags().BoolP("data-saver", "d", false, "Download compressed images")
	chapterDownloadCmd.Flags().Bool("port443", false, "Only use servers listening on port 443")
	chapterDownloadCmd.Flags().StringP("dir", "o", ".", "Directory to create the chapter folder in")
}

var chapterDownloadCmd = &cobra.Command{
	Use:   "download <id|link>",
	Short: "Download the pages of a chapter into a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		id := idArg(args)
		c, err := client.GetChapter(cmd.Context(), id)
		handleErr(err)

		urls, err := pageURLs(cmd, client, c)
		handleErr(err)

		name := c.Data.Attributes.Label()
		if manga := c.Related(mangadex.TypeManga); len(manga) > 0 {
			name = titleOf(cmd.Context(), client, manga[0]) + " " + name
		}

		dir := filepath.Join(lo.Must(cmd.Flags().GetString("dir")), util.SanitizeFilename(lo.Ternary(name != "", name, id.String())))
		handleErr(filesystem.API().MkdirAll(dir, 0o755))

		for i, u := range urls {
			erase := util.PrintErasable(fmt.Sprintf("%s Downloading page %d of %d", icon.Get(icon.Progress), i+1, len(urls)))
			err := download(cmd.Context(), u, filepath.Join(dir, fmt.Sprintf("%03d%s", i+1, path.Ext(u))))
			erase()
			handleErr(err)
		}

		cmd.Printf("%s %s saved to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), util.Quantify(len(urls), "page", "pages"), dir)
	},
}

func download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}

	file, err := filesystem.API().Create(dst)
	if err != nil {
		return err
	}
	defer util.Ignore(file.Close)

	_, err = io.Copy(file, resp.Body)
	return err
}

func init() {
	chapterCmd.AddCommand(chapterOpenCmd)
	chapterOpenCmd.Flags().StringP("with", "w", "", "Open with this application instead of the default browser")
}

var chapterOpenCmd = &cobra.Command{
	Use:   "open <id|link>",
	Short: "Open the chapter in the website reader",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		link := open.ChapterURL(idArg(args))
		handleErr(open.StartWith(link, lo.Must(cmd.Flags().GetString("with"))))
		cmd.Printf("%s %s\n", icon.Get(icon.Link), link)
	},
}
