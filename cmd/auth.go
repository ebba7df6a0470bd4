package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dexcli/dex/auth"
	"github.com/dexcli/dex/color"
	"github.com/dexcli/dex/icon"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/style"
	"github.com/dexcli/dex/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("username", "u", "", "MangaDex username")
	loginCmd.Flags().StringP("password", "p", "", "MangaDex password, prompted for when omitted")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to MangaDex and keep the session for later commands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		username := lo.Must(cmd.Flags().GetString("username"))
		password := lo.Must(cmd.Flags().GetString("password"))

		if username == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Username"}, &username, survey.WithValidator(survey.Required)))
		}

		if password == "" {
			handleErr(survey.AskOne(&survey.Password{Message: "Password"}, &password, survey.WithValidator(survey.Required)))
		}

		client, err := newClient()
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Logging in...", icon.Get(icon.Progress)))
		_, err = client.Login(cmd.Context(), username, password)
		erase()
		handleErr(err)
		handleErr(persist(client))

		fmt.Printf("%s Logged in as %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(username))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolP("local", "l", false, "Only forget the stored tokens, without ending the session remotely")
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the MangaDex session and forget the stored tokens",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("local")) {
			handleErr(auth.Delete())
			fmt.Printf("%s Tokens forgotten\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		client, err := newClient()
		handleErr(err)

		handleErr(client.Logout(cmd.Context()))
		handleErr(auth.Delete())

		fmt.Printf("%s Logged out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Trade the stored refresh token for a new session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		resp, err := client.Refresh(cmd.Context())
		handleErr(err)
		handleErr(persist(client))

		fmt.Printf("%s Session refreshed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
		if message, ok := resp.Message.Get(); ok && message != "" {
			fmt.Println(style.Faint(message))
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged user and what the session allows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newSessionClient(cmd.Context())
		handleErr(err)

		me, err := client.Me(cmd.Context())
		handleErr(err)

		status, err := client.CheckToken(cmd.Context())
		handleErr(err)

		fmt.Printf("%s %s %s\n", icon.Get(icon.User), style.Bold(me.Data.Attributes.Username), style.Faint(me.Data.ID.String()))
		fmt.Printf("%s %s\n", style.Fg(color.Blue)("Roles:"), strings.Join(status.Roles, ", "))
		fmt.Printf("%s %s\n", style.Fg(color.Blue)("Permissions:"), util.Quantify(len(status.Permissions), "permission", "permissions"))

		creds := client.Credentials().MustGet()
		if claims, err := mangadex.ParseSessionClaims(creds.Session); err == nil {
			fmt.Printf("%s %s\n", style.Fg(color.Blue)("Session:"), describeExpiry(claims.ExpiresIn(time.Now())))
		}
	},
}

func describeExpiry(left time.Duration) string {
	if left <= 0 {
		return style.Fg(color.Red)("expired")
	}
	return "expires in " + left.Round(time.Second).String()
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the MangaDex API is reachable",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		handleErr(err)

		start := time.Now()
		handleErr(client.Ping(cmd.Context()))

		fmt.Printf("%s pong %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Faint(time.Since(start).Round(time.Millisecond).String()))
	},
}
