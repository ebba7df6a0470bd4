package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/open"
	"github.com/dexcli/dex/style"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mangaCmd)
}

var mangaCmd = &cobra.Command{
	Use:     "manga",
	Aliases: []string{"m"},
	Short:   "Browse and manage titles",
}

func init() {
	mangaCmd.AddCommand(mangaShowCmd)
	mangaShowCmd.Flags().BoolP("json", "j", false, "Print the raw manga as JSON")
}

var mangaShowCmd = &cobra.Command{
	Use:   "show <id|link>",
	Short: "Show the details of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		m, err := client.GetManga(cmd.Context(), idArg(args))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(m))
			return
		}

		renderManga(cmd.OutOrStdout(), m)
	},
}

func init() {
	mangaCmd.AddCommand(mangaRandomCmd)
}

var mangaRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		m, err := client.RandomManga(cmd.Context())
		handleErr(err)

		renderManga(cmd.OutOrStdout(), m)
	},
}

func init() {
	mangaCmd.AddCommand(mangaFeedCmd)
	mangaFeedCmd.Flags().IntP("limit", "n", 100, "Number of chapters, up to 500")
	mangaFeedCmd.Flags().Int("offset", 0, "Skip this many chapters")
	mangaFeedCmd.Flags().StringSliceP("lang", "l", nil, "Only list chapters translated to these languages")
}

var mangaFeedCmd = &cobra.Command{
	Use:   "feed <id|link>",
	Short: "List the chapters of a manga",
	Long:  "List the chapters of a manga in reading order. When logged in, read chapters are marked.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := idArg(args)

		client, err := newClient()
		handleErr(err)

		langs := lo.Must(cmd.Flags().GetStringSlice("lang"))
		if len(langs) == 0 {
			langs = languages()
		}

		page, err := client.MangaFeed(cmd.Context(), id, mangadex.FeedQuery{
			Pagination: mangadex.Pagination{
				Limit:  lo.Must(cmd.Flags().GetInt("limit")),
				Offset: lo.Must(cmd.Flags().GetInt("offset")),
			},
			TranslatedLanguage: langs,
			Order:              mangadex.FeedOrder{Volume: mangadex.Asc, Chapter: mangadex.Asc},
		})
		handleErr(err)

		read := map[uuid.UUID]bool{}
		if client.Credentials().IsPresent() {
			markers, err := client.MangaReadMarkers(cmd.Context(), id)
			if err != nil {
				log.Warnf("read markers of %s: %v", id, err)
			}
			read = lo.SliceToMap(markers, func(id uuid.UUID) (uuid.UUID, bool) {
				return id, true
			})
		}

		cmd.Println(style.Title(titleOf(cmd.Context(), client, id)))
		for _, c := range page.Values() {
			cmd.Println(renderChapterLine(c, read[c.Data.ID]))
		}
		printPageFooter(cmd, page.Offset, len(page.Results), page.Total)
	},
}

func init() {
	mangaCmd.AddCommand(mangaUpdatesCmd)
	mangaUpdatesCmd.Flags().IntP("limit", "n", 30, "Number of chapters")
}

var mangaUpdatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List the newest chapters of the manga you follow",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		page, err := client.FollowedMangaFeed(cmd.Context(), mangadex.FeedQuery{
			Pagination:         mangadex.Pagination{Limit: lo.Must(cmd.Flags().GetInt("limit"))},
			TranslatedLanguage: languages(),
		})
		handleErr(err)

		for _, c := range page.Values() {
			title := "?"
			if related := c.Related(mangadex.TypeManga); len(related) > 0 {
				title = titleOf(cmd.Context(), client, related[0])
			}
			cmd.Printf("%s %s\n", style.Bold(title), renderChapterLine(c, false))
		}
	},
}

func init() {
	mangaCmd.AddCommand(mangaFollowedCmd)
	mangaFollowedCmd.Flags().IntP("limit", "n", 50, "Number of titles")
	mangaFollowedCmd.Flags().Int("offset", 0, "Skip this many titles")
}

var mangaFollowedCmd = &cobra.Command{
	Use:   "followed",
	Short: "List the manga you follow",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		page, err := client.FollowedManga(cmd.Context(), mangadex.Pagination{
			Limit:  lo.Must(cmd.Flags().GetInt("limit")),
			Offset: lo.Must(cmd.Flags().GetInt("offset")),
		})
		handleErr(err)

		for _, m := range page.Values() {
			cmd.Printf("%s %s\n", renderMangaLine(m), style.Faint(m.Data.ID.String()))
		}
		printPageFooter(cmd, page.Offset, len(page.Results), page.Total)
	},
}

func init() {
	mangaCmd.AddCommand(mangaFollowCmd, mangaUnfollowCmd)
}

var mangaFollowCmd = &cobra.Command{
	Use:   "follow <id|link>",
	Short: "Follow a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := idArg(args)
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		handleErr(client.FollowManga(cmd.Context(), id))
		cmd.Printf("%s Following %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(titleOf(cmd.Context(), client, id)))
	},
}

var mangaUnfollowCmd = &cobra.Command{
	Use:   "unfollow <id|link>",
	Short: "Stop following a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := idArg(args)
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		handleErr(client.UnfollowManga(cmd.Context(), id))
		cmd.Printf("%s No longer following %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(titleOf(cmd.Context(), client, id)))
	},
}

func init() {
	mangaCmd.AddCommand(mangaStatusCmd)
	mangaStatusCmd.Flags().StringP("set", "s", "", "Move the manga to this shelf")
	lo.Must0(mangaStatusCmd.RegisterFlagCompletionFunc("set", completeReadingStatus))
}

func completeReadingStatus(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(mangadex.ReadingStatuses, func(s mangadex.ReadingStatus, _ int) string {
		return string(s)
	}), cobra.ShellCompDirectiveNoFileComp
}

var mangaStatusCmd = &cobra.Command{
	Use:   "status <id|link>",
	Short: "Show or change the reading status of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := idArg(args)
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		if set := lo.Must(cmd.Flags().GetString("set")); set != "" {
			status := mangadex.ReadingStatus(set)
			if !lo.Contains(mangadex.ReadingStatuses, status) {
				handleErr(fmt.Errorf("unknown reading status %s", set))
			}
			handleErr(client.UpdateMangaReadingStatus(cmd.Context(), id, status))
		}

		status, err := client.MangaReadingStatus(cmd.Context(), id)
		handleErr(err)

		shelf := style.Faint("not in library")
		if status != "" {
			shelf = style.Fg(color.Cyan)(string(status))
		}
		cmd.Printf("%s %s\n", style.Bold(titleOf(cmd.Context(), client, id)), shelf)
	},
}

func init() {
	mangaCmd.AddCommand(mangaLibraryCmd)
	mangaLibraryCmd.Flags().StringP("status", "s", "", "Only show this shelf")
	lo.Must0(mangaLibraryCmd.RegisterFlagCompletionFunc("status", completeReadingStatus))
}

var mangaLibraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List your library grouped by reading status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		filter := mo.None[mangadex.ReadingStatus]()
		if status := lo.Must(cmd.Flags().GetString("status")); status != "" {
			filter = mo.Some(mangadex.ReadingStatus(status))
		}

		statuses, err := client.MangaReadingStatuses(cmd.Context(), filter)
		handleErr(err)

		shelves := lo.GroupBy(lo.Keys(statuses), func(id uuid.UUID) mangadex.ReadingStatus {
			return statuses[id]
		})

		for _, status := range mangadex.ReadingStatuses {
			ids, ok := shelves[status]
			if !ok {
				continue
			}

			titles := lo.Map(ids, func(id uuid.UUID, _ int) string {
				return titleOf(cmd.Context(), client, id)
			})
			sort.Strings(titles)

			cmd.Println(style.Title(string(status)))
			for _, title := range titles {
				cmd.Println("  " + title)
			}
		}
	},
}

func init() {
	mangaCmd.AddCommand(mangaOpenCmd)
	mangaOpenCmd.Flags().StringP("with", "w", "", "Open with this application instead of the default browser")
}

var mangaOpenCmd = &cobra.Command{
	Use:   "open <id|link>",
	Short: "Open the manga page on the website",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		link := open.MangaURL(idArg(args))
		handleErr(open.StartWith(link, lo.Must(cmd.Flags().GetString("with"))))
		cmd.Printf("%s %s\n", icon.Get(icon.Link), link)
	},
}
