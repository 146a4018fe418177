// Package cmd implements the command-line interface for primeflix.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/primeflix-cli/primeflix/backend"
	"github.com/primeflix-cli/primeflix/constant"
	"github.com/primeflix-cli/primeflix/icon"
	"github.com/primeflix-cli/primeflix/internal/cache"
	"github.com/primeflix-cli/primeflix/key"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/primeflix-cli/primeflix/network"
	"github.com/primeflix-cli/primeflix/platform"
	"github.com/primeflix-cli/primeflix/util"
	"github.com/primeflix-cli/primeflix/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var app struct {
	once     sync.Once
	registry platform.Registry
	service  *backend.Service
}

// initApp wires the production collaborators exactly once per process.
func initApp() {
	app.once.Do(func() {
		registry := platform.NewDirRegistry(where.Extensions())
		app.registry = registry
		app.service = backend.NewService(backend.Options{
			Registry: registry,
			Executor: platform.NewHTTPExecutor(registry, network.Client),
			Cache:    cache.New(where.Backend()),
		})
	})
}

func appRegistry() platform.Registry {
	initApp()
	return app.registry
}

func appService() *backend.Service {
	initApp()
	return app.service
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., emoji, plain, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("perf", false, "Print per-fetch timing traces")
	lo.Must0(viper.BindPFlag(key.PerfLogging, rootCmd.PersistentFlags().Lookup("perf")))

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the primeflix application.
var rootCmd = &cobra.Command{
	Use:   constant.Primeflix,
	Short: "A command-line front end for streaming catalog discovery",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
