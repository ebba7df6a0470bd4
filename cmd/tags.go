package cmd

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/dexcli/dex/cache"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().BoolP("refresh", "r", false, "Ignore the cached list and ask the API")
	tagsCmd.Flags().BoolP("json", "j", false, "Print the tags as JSON")
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags titles can be filtered by",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tags, err := loadTags(cmd)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(tags))
			return
		}

		langs := languages()
		groups := lo.GroupBy(tags, func(t mangadex.Tag) string {
			return t.Attributes.Group
		})

		names := lo.Keys(groups)
		sort.Strings(names)

		for _, group := range names {
			chips := lo.Map(groups[group], func(t mangadex.Tag, _ int) string {
				return t.Attributes.Name.Preferred(langs...)
			})
			sort.Strings(chips)

			cmd.Println(style.Title(util.Capitalize(group)))
			cmd.Println(util.Wrap(strings.Join(chips, ", "), 100))
			cmd.Println()
		}
	},
}

func loadTags(cmd *cobra.Command) ([]mangadex.Tag, error) {
	if !lo.Must(cmd.Flags().GetBool("refresh")) {
		if tags, ok := cache.Tags().Get(); ok {
			return tags, nil
		}
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	list, err := client.ListTags(cmd.Context())
	if err != nil {
		return nil, err
	}

	tags := lo.Map(list.Values(), func(t mangadex.TagData, _ int) mangadex.Tag {
		return t.Data
	})

	if err := cache.SetTags(tags); err != nil {
		log.Warnf("cache tags: %v", err)
	}

	return tags, nil
}
