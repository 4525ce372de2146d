package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nauticalab/buildcfg/internal/cli"
	"github.com/nauticalab/buildcfg/internal/validation"
)

var (
	matchServer string
)

// matchCmd reports the caching rule for a URL
var matchCmd = &cobra.Command{
	Use:   "match <url>",
	Short: "Show which runtime caching rule handles a URL",
	Long: `Show the first runtime caching rule whose urlPattern matches the URL.

Examples:
  buildcfg match https://api.example.com/orders
  buildcfg match https://api.example.com/orders --server http://127.0.0.1:5190`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := cli.RunMatch(cmd.Context(), cli.MatchOptions{
			ProjectOptions: projectOptions("match"),
			URL:            args[0],
			Server:         matchServer,
		})
		if err != nil {
			if !errors.As(err, new(*validation.ConfigError)) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchServer, "server", "", "Query a running inspection server instead of resolving locally")
}
