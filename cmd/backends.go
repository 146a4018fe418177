// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"fmt"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/primeflix-cli/primeflix/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backendsCmd)
	backendsCmd.AddCommand(backendsListCmd)
	backendsCmd.AddCommand(backendsWhichCmd)
}

// backendsCmd groups provider extension introspection commands.
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Inspect installed provider extensions",
}

// backendsListCmd enumerates every installed extension.
var backendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions",
	Run: func(cmd *cobra.Command, args []string) {
		extensions := appRegistry().Enumerate("")
		if len(extensions) == 0 {
			cmd.Println("no extensions installed")
			return
		}

		for _, ext := range extensions {
			state := icon.Get(icon.Success)
			if !ext.Enabled {
				state = icon.Get(icon.Fail)
			}

			line := fmt.Sprintf("%s %s %s", state, style.Bold(ext.ID), style.Faint(ext.Category))
			if ext.ServiceURL != "" {
				line += " " + style.Fg(color.Blue)(ext.ServiceURL)
			}
			cmd.Println(line)
		}
		cmd.Println(style.Faint(util.Quantify(len(extensions), "extension", "extensions")))
	},
}

// backendsWhichCmd shows the outcome of strategy selection.
var backendsWhichCmd = &cobra.Command{
	Use:   "which",
	Short: "Show the selected backend and strategy",
	Run: func(cmd *cobra.Command, args []string) {
		descriptor, err := appService().Select()
		handleErr(err)

		cmd.Printf("%s %s\n", style.Bold(descriptor.BackendID), style.Faint(string(descriptor.Strategy)+" strategy"))

		if region, err := appService().Region(); err == nil && region != "" {
			cmd.Println("region: " + region)
		}
		if ready, ok := appService().DRMReady().Get(); ok {
			cmd.Printf("drm ready: %v\n", ready)
		}
	},
}
