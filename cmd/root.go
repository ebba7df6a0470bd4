// Package cmd implements the dex command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/constant"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/log"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("api", "", "Override the MangaDex API base URL")
	lo.Must0(viper.BindPFlag(key.APIBaseURL, rootCmd.PersistentFlags().Lookup("api")))

	rootCmd.PersistentFlags().StringP("language", "L", "", "Preferred language for titles and chapters")
	lo.Must0(viper.BindPFlag(key.MangaLanguage, rootCmd.PersistentFlags().Lookup("language")))

	rootCmd.SetOut(os.Stdout)

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.Context())
	})
}

// rootCmd defines the entry point for dex.
var rootCmd = &cobra.Command{
	Use:   constant.Dex,
	Short: "A command-line client for MangaDex",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line client for MangaDex"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func example(lines ...string) string {
	return strings.Join(lo.Map(lines, func(line string, _ int) string {
		return "  " + constant.Dex + " " + line
	}), "\n")
}

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))

	var apiErr *mangadex.APIError
	if errors.As(err, &apiErr) {
		for _, record := range apiErr.Errors {
			_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorTitle(strconv.Itoa(record.Status)), style.Faint(record.ID.String()))
		}
	}

	if errors.Is(err, mangadex.ErrMissingCredentials) {
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", style.Faint("Run `"+constant.Dex+" login` first"))
	}

	os.Exit(1)
}
