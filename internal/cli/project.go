package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/nauticalab/buildcfg/internal/config"
	"github.com/nauticalab/buildcfg/internal/git"
	"github.com/nauticalab/buildcfg/internal/resolver"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// ProjectOptions locates and loads the declaration of one project.
type ProjectOptions struct {
	// Root is the project directory; alias targets resolve against it
	Root string
	// Files overrides declaration discovery when non-empty
	Files []string
	// Env holds BUILDCFG_* overrides; nil means read the process environment
	Env     map[string]string
	Verbose bool
	Logger  zerolog.Logger
	// Out receives command output; defaults to os.Stdout
	Out io.Writer
}

func (o ProjectOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// LoadConfiguration reads, layers and resolves the project declaration.
func LoadConfiguration(opts ProjectOptions) (*buildconfig.BuildConfiguration, error) {
	var (
		env config.EnvOverrides
		err error
	)
	if opts.Env != nil {
		env, err = config.ParseEnvOverridesFrom(opts.Env)
	} else {
		env, err = config.ParseEnvOverrides()
	}
	if err != nil {
		return nil, err
	}

	decl, err := config.Load(opts.Root, config.LoadOptions{Files: opts.Files, Env: env})
	if err != nil {
		return nil, fmt.Errorf("failed to load declaration: %w", err)
	}

	r := resolver.New(opts.Root, resolver.WithLogger(opts.Logger))
	return r.Resolve(*decl)
}

// DefaultRoot returns the top of the enclosing Git work tree, or the
// current directory outside a repository.
func DefaultRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := git.FindProjectRoot(cwd); err == nil {
		return root
	}
	return cwd
}

// printConfigSummary prints a short overview of a resolved configuration
func printConfigSummary(w io.Writer, cfg *buildconfig.BuildConfiguration) {
	fmt.Fprintf(w, "\nConfiguration Summary:\n")
	fmt.Fprintf(w, "  Root: %s\n", cfg.Root())
	if info, err := git.GetInfo(cfg.Root()); err == nil && info.CommitHash != "" {
		dirty := ""
		if info.IsDirty {
			dirty = " (dirty)"
		}
		fmt.Fprintf(w, "  Revision: %s@%s%s\n", info.Branch, info.ShortHash(), dirty)
	}
	fmt.Fprintf(w, "  Inputs: %d\n", len(cfg.Inputs()))
	for _, input := range cfg.Inputs() {
		fmt.Fprintf(w, "    - %s\n", input)
	}

	plugins := cfg.Plugins()
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Name)
	}
	fmt.Fprintf(w, "  Plugins: %v\n", names)

	for _, alias := range cfg.Aliases() {
		fmt.Fprintf(w, "  Alias: %s -> %s\n", alias.Key, alias.Path)
	}

	server := cfg.Server()
	fmt.Fprintf(w, "  Dev server: %s:%d\n", server.Host, server.Port)
	if server.HMRHost != "" || server.HMRPort != 0 {
		fmt.Fprintf(w, "  HMR: host=%s port=%d\n", server.HMRHost, server.HMRPort)
	}

	if pwa, ok := cfg.PWA(); ok {
		fmt.Fprintf(w, "  PWA: %s (%s, %d icons, %d caching rules)\n",
			pwa.Name, pwa.Display, len(pwa.Icons), len(pwa.Caching.Rules))
	}
}
