// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(railCmd)
	railCmd.Flags().StringP("cursor", "c", "", "Continuation cursor from a previous page")
	railCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the cache and fetch a fresh page")
}

// railCmd renders one page of a single rail.
var railCmd = &cobra.Command{
	Use:   "rail <id>",
	Short: "Show one page of a rail",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cursor := lo.Must(cmd.Flags().GetString("cursor"))
		force := lo.Must(cmd.Flags().GetBool("force-refresh"))

		start := time.Now()
		page, warm, err := appService().Rail(args[0], cursor, force)
		handleErr(err)
		perfTrace(cmd, "rail "+args[0], start)

		cmd.Printf("%s %s\n", temperature(warm), args[0])
		printItems(cmd, page.Items)
		printCursor(cmd, page)
	},
}
