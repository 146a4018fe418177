// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"time"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/preflight"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolP("force-refresh", "f", false, "Bypass the cache and resolve fresh playback properties")
	playCmd.Flags().Bool("skip-checks", false, "Resolve playback properties without running readiness checks")
}

// playCmd resolves the playback properties of one item, gated behind the
// readiness checks unless explicitly skipped.
var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Resolve playback properties for an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force := lo.Must(cmd.Flags().GetBool("force-refresh"))

		if !lo.Must(cmd.Flags().GetBool("skip-checks")) {
			results, err := preflight.NewGate(appRegistry(), appService()).Run()
			for _, r := range results {
				marker := icon.Get(icon.Success)
				if !r.Passed {
					marker = icon.Get(icon.Fail)
				}
				cmd.Printf("%s %s: %s\n", marker, r.Name, r.Detail)
			}
			handleErr(err)
		}

		start := time.Now()
		playable, warm, err := appService().Playable(args[0], force)
		handleErr(err)
		perfTrace(cmd, "play "+args[0], start)

		cmd.Printf("%s %s\n", temperature(warm), style.Bold(args[0]))
		cmd.Printf("stream:   %s\n", style.Fg(color.Green)(playable.StreamURL))
		cmd.Printf("manifest: %s\n", playable.ManifestType)
		if license, ok := playable.LicenseKey.Get(); ok {
			cmd.Printf("license:  %s %s\n", icon.Get(icon.Lock), license)
		}
		for k, v := range playable.Headers {
			cmd.Println(style.Faint("header: " + k + ": " + v))
		}
	},
}
