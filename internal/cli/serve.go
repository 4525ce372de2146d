package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/nauticalab/buildcfg/internal/api"
	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// ServeOptions holds configuration for the serve command
type ServeOptions struct {
	ProjectOptions
	Host      string
	Port      int
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// RunServe starts the inspection server and blocks until ctx is done.
// The declaration is re-resolved for every request.
func RunServe(ctx context.Context, opts ServeOptions) error {
	w := opts.out()

	// An unreadable declaration stops here; violations are served instead.
	if _, err := LoadConfiguration(opts.ProjectOptions); err != nil {
		printValidationError(opts.ProjectOptions, err)
		var cfgErr *validation.ConfigError
		if !errors.As(err, &cfgErr) {
			return err
		}
	}

	project := opts.ProjectOptions
	source := func() (*buildconfig.BuildConfiguration, error) {
		return LoadConfiguration(project)
	}

	server, err := api.NewServer(api.ServerConfig{
		Host:      opts.Host,
		Port:      opts.Port,
		Source:    source,
		Logger:    opts.Logger,
		Version:   opts.Version,
		GitCommit: opts.GitCommit,
		BuildTime: opts.BuildTime,
		GoVersion: opts.GoVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Fprintf(w, "Starting buildcfg inspection server on %s\n", server.Addr())
	fmt.Fprintf(w, "\nEndpoints:\n")
	fmt.Fprintf(w, "  GET  /api/v1/health                - Health check\n")
	fmt.Fprintf(w, "  GET  /api/v1/version               - Version information\n")
	fmt.Fprintf(w, "  GET  /api/v1/config                - Resolved configuration\n")
	fmt.Fprintf(w, "  GET  /api/v1/config/aliases        - Alias map\n")
	fmt.Fprintf(w, "  GET  /api/v1/config/caching/match  - Caching rule for ?url=\n")
	fmt.Fprintf(w, "  GET  /manifest.webmanifest         - Web app manifest\n")
	fmt.Fprintf(w, "  GET  /vite.config.mjs              - Generated Vite config\n\n")

	return server.StartWithContext(ctx)
}
