// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"strings"
	"time"

	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/query"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("cursor", "c", "", "Continuation cursor from a previous page")
	searchCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the cache and search fresh")

	lo.Must0(searchCmd.RegisterFlagCompletionFunc("cursor", cobra.NoFileCompletions))
}

// searchCmd searches the provider catalog.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")
		cursor := lo.Must(cmd.Flags().GetString("cursor"))
		force := lo.Must(cmd.Flags().GetBool("force-refresh"))

		start := time.Now()
		page, warm, err := appService().Search(q, cursor, force)
		handleErr(err)
		perfTrace(cmd, "search", start)

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("search: remembering query: %v", err)
		}

		if len(page.Items) == 0 {
			cmd.Printf("%s nothing found for %q\n", temperature(warm), q)
			if suggestion, ok := query.Suggest(q).Get(); ok && suggestion != strings.ToLower(q) {
				cmd.Println(style.Faint("did you mean: " + suggestion))
			}
			return
		}

		cmd.Printf("%s results for %q\n", temperature(warm), q)
		printItems(cmd, page.Items)
		printCursor(cmd, page)
	},
}
