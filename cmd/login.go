// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/session"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringP("region", "r", "", "Provider region code (e.g., US, DE, JP)")
}

// loginCmd captures provider credentials and persists the session state.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the content provider",
	Run: func(cmd *cobra.Command, args []string) {
		var answers struct {
			Email string
			Token string
		}

		handleErr(survey.Ask([]*survey.Question{
			{
				Name:     "email",
				Prompt:   &survey.Input{Message: "Account email:"},
				Validate: survey.Required,
			},
			{
				Name:     "token",
				Prompt:   &survey.Password{Message: "Access token:"},
				Validate: survey.Required,
			},
		}, &answers))

		region := lo.Must(cmd.Flags().GetString("region"))
		if region == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Region:", Default: "US"}, &region))
		}

		handleErr(session.SetToken(answers.Token))
		handleErr(session.Save(session.Profile{Email: answers.Email, Region: region}))

		cmd.Printf("%s logged in as %s (%s)\n", icon.Get(icon.Success), answers.Email, region)
	},
}

// logoutCmd removes the persisted session state.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		if !session.LoggedIn() {
			handleErr(errors.New("not logged in"))
		}

		handleErr(session.Clear())
		cmd.Printf("%s logged out\n", icon.Get(icon.Success))
	},
}
