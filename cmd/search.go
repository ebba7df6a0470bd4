package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/query"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "n", 0, "Number of results, from 1 to 100")
	searchCmd.Flags().Int("offset", 0, "Skip this many results")
	lo.Must0(viper.BindPFlag(key.SearchLimit, searchCmd.Flags().Lookup("limit")))

	searchCmd.Flags().StringSliceP("status", "s", nil, "Only show titles with these publication statuses")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{
			string(mangadex.StatusOngoing),
			string(mangadex.StatusCompleted),
			string(mangadex.StatusHiatus),
			string(mangadex.StatusCancelled),
		}, cobra.ShellCompDirectiveNoFileComp
	}))

	searchCmd.Flags().StringSliceP("rating", "r", nil, "Only show titles with these content ratings")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("rating", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(mangadex.ContentRatings, func(r mangadex.ContentRating, _ int) string {
			return string(r)
		}), cobra.ShellCompDirectiveNoFileComp
	}))

	searchCmd.Flags().BoolP("json", "j", false, "Print the raw results as JSON")
	searchCmd.Flags().BoolP("pick", "p", false, "Choose a result interactively and show its details")

	searchCmd.ValidArgsFunction = func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

var searchCmd = &cobra.Command{
	Use:     "search <title>",
	Short:   "Search MangaDex titles",
	Example: example("search \"solo leveling\" --status completed --pick"),
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		q := mangadex.MangaQuery{
			Pagination: mangadex.Pagination{
				Limit:  viper.GetInt(key.SearchLimit),
				Offset: lo.Must(cmd.Flags().GetInt("offset")),
			},
			Title: title,
			Status: lo.Map(lo.Must(cmd.Flags().GetStringSlice("status")), func(s string, _ int) mangadex.MangaStatus {
				return mangadex.MangaStatus(s)
			}),
			ContentRating: contentRatings(lo.Must(cmd.Flags().GetStringSlice("rating"))),
		}

		client, err := newClient()
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Searching for %s...", icon.Get(icon.Search), style.Bold(title)))
		page, err := client.ListManga(cmd.Context(), q)
		erase()
		handleErr(err)

		if err := query.Remember(title, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		for _, failure := range page.Failures() {
			log.Warnf("skipping search result: %v", failure)
		}

		mangas := page.Values()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(mangas))
			return
		}

		if len(mangas) == 0 {
			cmd.Printf("%s Nothing found for %s\n", icon.Get(icon.Fail), style.Bold(title))
			if suggestion, ok := query.Suggest(title).Get(); ok && suggestion != strings.ToLower(title) {
				cmd.Println(style.Faint("Did you mean " + suggestion + "?"))
			}
			return
		}

		if lo.Must(cmd.Flags().GetBool("pick")) {
			options := lo.Map(mangas, func(m mangadex.MangaData, i int) string {
				return fmt.Sprintf("%d. %s", i+1, mangaTitle(m))
			})

			var choice int
			handleErr(survey.AskOne(&survey.Select{
				Message:  "Choose a title",
				Options:  options,
				PageSize: 15,
			}, &choice))

			renderManga(cmd.OutOrStdout(), mangas[choice])
			return
		}

		for _, m := range mangas {
			cmd.Printf("%s %s\n", renderMangaLine(m), style.Faint(m.Data.ID.String()))
		}
		printPageFooter(cmd, page.Offset, len(page.Results), page.Total)
	},
}

// contentRatings falls back to search.content_rating when no rating is given.
func contentRatings(flags []string) []mangadex.ContentRating {
	if len(flags) == 0 {
		flags = lo.Compact([]string{viper.GetString(key.SearchContentRating)})
	}

	return lo.Map(flags, func(s string, _ int) mangadex.ContentRating {
		return mangadex.ContentRating(s)
	})
}
