// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"os"
	"runtime"

	"github.com/primeflix-cli/primeflix/color"
	"github.com/primeflix-cli/primeflix/constant"
	"github.com/primeflix-cli/primeflix/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		cmd.Printf("%s %s\n", style.Fg(color.Cyan)(constant.Primeflix), style.Bold(constant.Version))
		cmd.Println(style.Faint(runtime.GOOS + "/" + runtime.GOARCH + " " + runtime.Version()))
	},
}
