// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"fmt"
	"time"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/content"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/key"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// temperature renders the cache temperature marker of a fetch.
func temperature(warm bool) string {
	if warm {
		return icon.Get(icon.Warm)
	}
	return icon.Get(icon.Cold)
}

// perfTrace prints a timing line when performance logging is enabled.
func perfTrace(cmd *cobra.Command, label string, start time.Time) {
	if viper.GetBool(key.PerfLogging) {
		cmd.Printf("%s %s took %dms\n", icon.Get(icon.Progress), label, time.Since(start).Milliseconds())
	}
}

// printItems renders a page of catalog entries, one line each.
func printItems(cmd *cobra.Command, items []content.VideoItem) {
	for _, item := range items {
		line := fmt.Sprintf("%s  %s", style.Fg(color.Yellow)(item.ID), style.Bold(item.Title))
		if year, ok := item.Year.Get(); ok {
			line += style.Faint(fmt.Sprintf(" (%d)", year))
		}
		if item.IsPlayable {
			line += " " + style.Fg(color.Green)("playable")
		}
		cmd.Println(line)
	}
}

// printCursor renders the continuation hint of a paginated fetch.
func printCursor(cmd *cobra.Command, page content.Page) {
	if cursor, ok := page.NextCursor.Get(); ok {
		cmd.Println(style.Faint("next page: --cursor " + cursor))
	}
}
