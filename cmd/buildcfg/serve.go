package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nauticalab/buildcfg/internal/cli"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolved configuration over HTTP",
	Long: `Start a read-only HTTP server exposing the resolved configuration.

The declaration is re-read on every request, so edits show up without a
restart. Invalid declarations are reported with status 422 and the full
list of violations.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveHost, "bind", "b", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 5190, "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.RunServe(ctx, cli.ServeOptions{
		ProjectOptions: projectOptions("serve"),
		Host:           serveHost,
		Port:           servePort,
		Version:        version,
		GitCommit:      gitCommit,
		BuildTime:      buildTime,
		GoVersion:      runtime.Version(),
	})
}
