package cmd

import (
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dexcli/dex/filesystem"
	"github.com/dexcli/dex/inline"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/query"
	"github.com/dexcli/dex/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Title to search for")
	inlineCmd.Flags().StringP("manga", "m", "", "Which search result to use")
	inlineCmd.Flags().StringP("chapters", "c", "", "Which chapters of the manga to use")
	inlineCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	inlineCmd.Flags().BoolP("pages", "p", false, "Resolve the page images of every chapter")
	inlineCmd.Flags().BoolP("data-saver", "d", false, "Use compressed page images")
	inlineCmd.Flags().IntP("limit", "n", 0, "Number of search results, from 1 to 100")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to this file")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search and resolve chapters without any prompts",
	Long: `Search and resolve chapters without any prompts, for use in scripts.

Manga selectors:
  first - first search result
  last - last search result
  exact - result whose title equals the query
  [number] - result by index, starting from 0

Chapter selectors:
  first - first chapter
  last - last chapter
  all - every chapter
  [number] - chapter by index, starting from 0
  [from]-[to] - chapters by index range
  @[substring]@ - chapters whose label contains the substring

With --json the manga selector may be omitted to print every result.`,
	Example: example(
		"inline -q \"blue period\" -m exact -c all -j",
		"inline -q berserk -m first -c 0-4 --pages --data-saver",
	),
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("manga"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		title := lo.Must(cmd.Flags().GetString("query"))

		var out io.Writer = cmd.OutOrStdout()
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			out = file
		}

		picker := mo.None[inline.MangaPicker]()
		if flag := lo.Must(cmd.Flags().GetString("manga")); flag != "" {
			fn, err := inline.ParseMangaPicker(flag, title)
			handleErr(err)
			picker = mo.Some(fn)
		}

		filter := mo.None[inline.ChaptersFilter]()
		if flag := lo.Must(cmd.Flags().GetString("chapters")); flag != "" {
			fn, err := inline.ParseChaptersFilter(flag)
			handleErr(err)
			filter = mo.Some(fn)
		}

		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if limit == 0 {
			limit = viper.GetInt(key.SearchLimit)
		}

		client, err := newClient()
		handleErr(err)

		handleErr(inline.Run(cmd.Context(), &inline.Options{
			Out:            out,
			Client:         client,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Query:          title,
			Limit:          limit,
			ContentRating:  contentRatings(nil),
			Languages:      languages(),
			MangaPicker:    picker,
			ChaptersFilter: filter,
			Pages:          lo.Must(cmd.Flags().GetBool("pages")),
			DataSaver:      lo.Must(cmd.Flags().GetBool("data-saver")),
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "manga", "chapter", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&inline.Output{})))
	},
}
