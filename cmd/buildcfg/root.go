package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/buildcfg/internal/cli"
	"github.com/nauticalab/buildcfg/internal/logger"
)

var (
	// Global flags (available to all commands)
	verbose   bool
	jsonLogs  bool
	rootDir   string
	declFiles []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buildcfg",
	Short: "Validate and normalize front-end build declarations",
	Long: `buildcfg reads a declarative build file (buildcfg.yaml) and resolves it
into a canonical build configuration.

It checks entry inputs, plugins, path aliases, dev-server ports and the
PWA manifest with its runtime caching rules, reporting every problem in
one pass. The resolved configuration can be printed, rendered to a Vite
config and web manifest, or served over HTTP for inspection.`,
	SilenceUsage: true,
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON instead of console text")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", "", "Project root (default: top of the Git work tree, else the current directory)")
	rootCmd.PersistentFlags().StringSliceVarP(&declFiles, "file", "f", nil, "Declaration files to merge in order (default: buildcfg.yaml plus buildcfg.local.yaml)")

	// Add subcommands to root
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(versionCmd)
}

// projectOptions builds the shared options from the global flags
func projectOptions(component string) cli.ProjectOptions {
	root := rootDir
	if root == "" {
		root = cli.DefaultRoot()
	}

	format := logger.FormatConsole
	if jsonLogs {
		format = logger.FormatJSON
	}

	return cli.ProjectOptions{
		Root:    root,
		Files:   declFiles,
		Verbose: verbose,
		Logger: logger.New(logger.Options{
			Format:    format,
			Verbose:   verbose,
			Component: component,
		}),
	}
}
