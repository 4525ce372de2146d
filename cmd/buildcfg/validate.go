package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nauticalab/buildcfg/internal/cli"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the build declaration",
	Long: `Validate the build declaration and report every problem found.

This command checks for:
- Missing entry inputs and required fields
- Duplicate alias keys and alias targets that are not directories
- Dev-server and HMR ports outside 1-65535
- Unknown caching strategies and invalid expiration limits

Examples:
  buildcfg validate
  buildcfg validate -C ./frontend
  buildcfg validate -f buildcfg.yaml -f buildcfg.ci.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.RunValidate(projectOptions("validate")); err != nil {
			os.Exit(1)
		}
	},
}
