// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"fmt"
	"time"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/primeflix-cli/primeflix/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(homeCmd)
	homeCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the cache and fetch fresh rails")
}

// homeCmd renders the provider's home screen rails.
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home screen rails",
	Run: func(cmd *cobra.Command, args []string) {
		force := lo.Must(cmd.Flags().GetBool("force-refresh"))

		start := time.Now()
		rails, warm, err := appService().HomeRails(force)
		handleErr(err)
		perfTrace(cmd, "home", start)

		cmd.Printf("%s %s\n\n", temperature(warm), style.Bold(util.Quantify(len(rails), "rail", "rails")))
		for _, rail := range rails {
			header := fmt.Sprintf("%s %s",
				style.Fg(color.Cyan)(rail.Title),
				style.Faint(fmt.Sprintf("[%s, %s]", rail.Identifier, util.Quantify(len(rail.Items), "item", "items"))),
			)
			cmd.Println(header)
			printItems(cmd, rail.Items)
			cmd.Println()
		}
	},
}
