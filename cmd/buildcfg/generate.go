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
	// Command-specific flags for generate
	outputDir string
	dryRun    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the Vite config and web manifest",
	Long: `Resolve the build declaration and render the generated files:

  vite.config.generated.mjs   Vite defineConfig with plugins, aliases and server
  manifest.webmanifest        Web app manifest (only when a pwa block exists)

Examples:
  buildcfg generate
  buildcfg generate --output ./public/build --dry-run`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := cli.RunGenerate(cli.GenerateOptions{
			ProjectOptions: projectOptions("generate"),
			OutputDir:      outputDir,
			DryRun:         dryRun,
		})
		if err != nil {
			if !errors.As(err, new(*validation.ConfigError)) {
				fmt.Fprintf(os.Stderr, "Error generating files: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "./build", "Output directory for generated files, relative to the project root")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without creating files")
}
