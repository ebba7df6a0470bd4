package cmd

import (
	"fmt"

	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var reportCategories = []mangadex.ReportCategory{
	mangadex.ReportManga,
	mangadex.ReportChapter,
	mangadex.ReportScanlationGroup,
	mangadex.ReportUser,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}

var reportsCmd = &cobra.Command{
	Use:       "reports <manga|chapter|scanlation_group|user>",
	Short:     "List the reasons a report may give",
	Args:      cobra.ExactArgs(1),
	ValidArgs: lo.Map(reportCategories, func(c mangadex.ReportCategory, _ int) string { return string(c) }),
	Run: func(cmd *cobra.Command, args []string) {
		category := mangadex.ReportCategory(args[0])
		if !lo.Contains(reportCategories, category) {
			handleErr(fmt.Errorf("unknown report category %s", args[0]))
		}

		client, err := newClient()
		handleErr(err)

		page, err := client.ReportReasons(cmd.Context(), category)
		handleErr(err)

		langs := languages()
		for _, reason := range page.Values() {
			attrs := reason.Data.Attributes
			line := attrs.Reason.Preferred(langs...)
			if attrs.DetailsRequired {
				line += " " + style.Faint("(details required)")
			}
			cmd.Printf("%s %s\n", line, style.Faint(reason.Data.ID.String()))
		}
	},
}
