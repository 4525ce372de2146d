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
	// Resolve command flags
	outputFormat string
)

// resolveCmd prints the canonical configuration
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved build configuration",
	Long: `Resolve the build declaration and print the canonical configuration.

Defaults are filled in, alias targets are made absolute and plugin inputs
are merged into the entry list.

Examples:
  buildcfg resolve
  buildcfg resolve --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := cli.RunResolve(cli.ResolveOptions{
			ProjectOptions: projectOptions("resolve"),
			Format:         outputFormat,
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
	resolveCmd.Flags().StringVarP(&outputFormat, "output", "o", cli.FormatYAML, "Output format (yaml or json)")
}
