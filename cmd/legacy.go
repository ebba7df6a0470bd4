package cmd

import (
	"fmt"
	"strconv"

	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var mappingTypes = []mangadex.MappingType{
	mangadex.MappingManga,
	mangadex.MappingChapter,
	mangadex.MappingGroup,
	mangadex.MappingTag,
}

func init() {
	rootCmd.AddCommand(legacyCmd)
}

var legacyCmd = &cobra.Command{
	Use:       "legacy <manga|chapter|group|tag> <id>...",
	Short:     "Translate numeric ids of the old site to current ids",
	Example:   example("legacy manga 1 2 3"),
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: lo.Map(mappingTypes, func(t mangadex.MappingType, _ int) string { return string(t) }),
	Run: func(cmd *cobra.Command, args []string) {
		kind := mangadex.MappingType(args[0])
		if !lo.Contains(mappingTypes, kind) {
			handleErr(fmt.Errorf("unknown mapping type %s", args[0]))
		}

		ids := lo.Map(args[1:], func(arg string, _ int) int {
			id, err := strconv.Atoi(arg)
			if err != nil {
				handleErr(fmt.Errorf("legacy ids are numbers, got %s", arg))
			}
			return id
		})

		client, err := newClient()
		handleErr(err)

		list, err := client.LegacyMapping(cmd.Context(), kind, ids...)
		handleErr(err)

		for _, failure := range list.Failures() {
			log.Warnf("legacy mapping: %v", failure)
		}

		for _, mapping := range list.Values() {
			attrs := mapping.Data.Attributes
			cmd.Printf("%s %s %s\n", style.Bold(strconv.Itoa(attrs.LegacyID)), style.Faint("->"), attrs.NewID)
		}
	},
}
