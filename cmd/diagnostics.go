// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/diagnostics"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/primeflix-cli/primeflix/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
	diagnosticsCmd.Flags().BoolP("json", "j", false, "Emit the report as JSON")
}

// diagnosticsCmd measures cache effectiveness with repeated home view builds.
var diagnosticsCmd = &cobra.Command{
	Use:     "diagnostics",
	Aliases: []string{"diag"},
	Short:   "Measure cache effectiveness against latency budgets",
	Run: func(cmd *cobra.Command, args []string) {
		report, err := diagnostics.NewHarness(appService()).Run()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoded, err := json.MarshalIndent(report, "", "  ")
			handleErr(err)
			cmd.Println(string(encoded))
			return
		}

		cmd.Printf("backend: %s (%s strategy)\n\n", style.Bold(report.Descriptor.BackendID), report.Descriptor.Strategy)

		cmd.Println(style.Fg(color.Cyan)("home view"))
		printTimings(cmd, report.Home)

		if report.Rail != nil {
			cmd.Printf("\n%s\n", style.Fg(color.Cyan)("rail "+report.Rail.RailID))
			printTimings(cmd, report.Rail.Timings)
		}

		cmd.Println()
		if report.Breaches == 0 {
			cmd.Printf("%s all runs within budget\n", icon.Get(icon.Success))
			return
		}
		cmd.Printf("%s %s over budget\n", icon.Get(icon.Fail), util.Quantify(report.Breaches, "run", "runs"))
	},
}

func printTimings(cmd *cobra.Command, timings []diagnostics.Timing) {
	for _, t := range timings {
		line := fmt.Sprintf("%s run %d: %dms", temperature(t.Warm), t.Run, t.ElapsedMs)
		if t.Breached {
			line += " " + style.Fg(color.Red)("over budget")
		}
		cmd.Println(line)
	}
}
