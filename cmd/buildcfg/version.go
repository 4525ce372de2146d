package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nauticalab/buildcfg/internal/cli"
	"github.com/nauticalab/buildcfg/internal/git"
)

// Version subcommand
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildcfg version %s\n", version)

		if verbose {
			fmt.Printf("  Build time: %s\n", buildTime)
			fmt.Printf("  Git commit: %s\n", gitCommit)
			fmt.Printf("  Go version: %s\n", runtime.Version())

			root := rootDir
			if root == "" {
				root = cli.DefaultRoot()
			}
			if info, err := git.GetInfo(root); err == nil {
				fmt.Printf("  Project: %s (%s@%s, dirty=%t)\n", info.Root, info.Branch, info.ShortHash(), info.IsDirty)
			}
		}
	},
}
