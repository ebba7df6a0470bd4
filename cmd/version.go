package cmd

import (
	"runtime"
	"strings"
	"text/template"

	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/constant"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
	versionCmd.Flags().BoolP("check", "c", false, "Compare with the latest release")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint": style.Faint,
	"bold":  style.Bold,
	"brand": style.Fg(color.Brand),
	"green": style.Fg(color.Green),
	"red":   style.Fg(color.Red),
}).Parse(`{{ brand "▇▇▇" }} {{ brand .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Commit" }}      {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} by {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .Platform }}
  {{ faint "API" }}         {{ bold .API }}
  {{ faint "User agent" }}  {{ bold .UserAgent }}
{{- with .Latest }}
  {{ faint "Latest" }}      {{ if $.Outdated }}{{ red . }}{{ else }}{{ green . }}{{ end }}
{{- end }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := struct {
			App, Version, Revision, BuiltAt, BuiltBy string
			Platform, API, UserAgent                string
			Latest                                  string
			Outdated                                bool
		}{
			App:       constant.Dex,
			Version:   constant.Version,
			Revision:  constant.Revision,
			BuiltAt:   strings.TrimSpace(constant.BuiltAt),
			BuiltBy:   constant.BuiltBy,
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			API:       viper.GetString(key.APIBaseURL),
			UserAgent: viper.GetString(key.APIUserAgent),
		}

		if lo.Must(cmd.Flags().GetBool("check")) {
			latest, err := version.Latest(cmd.Context())
			if err != nil {
				log.Warnf("latest version: %v", err)
			} else {
				info.Latest = latest
				if comp, err := version.Compare(latest, constant.Version); err == nil {
					info.Outdated = comp > 0
				}
			}
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
