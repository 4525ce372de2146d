// Package resolver turns a raw build declaration into a validated,
// canonical BuildConfiguration.
//
// Resolution is a pure, one-shot transformation: every check runs, all
// violations are collected into a single *validation.ConfigError, and no
// partial configuration is ever returned. The only I/O is a read-only
// stat of each alias target.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nauticalab/buildcfg/internal/config"
	"github.com/nauticalab/buildcfg/internal/plugins"
	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// Documented defaults applied when a value is not declared.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 5173
	DefaultStartURL     = "/"
	DefaultDisplay      = buildconfig.DisplayStandalone
	DefaultRegisterType = buildconfig.RegisterPrompt
)

// Resolver validates declarations for one project root.
type Resolver struct {
	root   string
	logger zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New returns a Resolver for the project at root. Relative alias targets
// are resolved against root.
func New(root string, opts ...Option) *Resolver {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	r := &Resolver{root: root, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the absolute project root.
func (r *Resolver) Root() string { return r.root }

// Resolve validates decl and returns the canonical configuration, or a
// *validation.ConfigError listing every violation found.
func (r *Resolver) Resolve(decl config.Declaration) (*buildconfig.BuildConfiguration, error) {
	var c validation.Collector

	parts := buildconfig.Parts{Root: r.root}

	pluginSpecs, pluginInputs := r.resolvePlugins(&c, decl.Plugins)
	parts.Plugins = pluginSpecs
	parts.Inputs = r.resolveInputs(&c, decl.Input, pluginInputs)
	parts.Aliases = r.resolveAliases(&c, decl.Aliases)
	parts.Server = r.resolveServer(&c, decl.Server)
	if decl.PWA != nil {
		pwa := r.resolvePWA(&c, decl.PWA)
		parts.PWA = &pwa
	}

	if err := c.Err(); err != nil {
		r.logger.Debug().
			Str("root", r.root).
			Int("violations", c.Len()).
			Msg("build declaration rejected")
		return nil, err
	}

	cfg := buildconfig.New(parts)
	r.logger.Debug().
		Str("root", r.root).
		Int("inputs", len(parts.Inputs)).
		Int("plugins", len(parts.Plugins)).
		Int("aliases", len(parts.Aliases)).
		Bool("pwa", parts.PWA != nil).
		Msg("build configuration resolved")
	return cfg, nil
}

// resolvePlugins decodes every plugin in declared order. It also returns
// the entry inputs declared through the laravel plugin.
func (r *Resolver) resolvePlugins(c *validation.Collector, decls []config.PluginDeclaration) ([]buildconfig.PluginSpec, []string) {
	specs := make([]buildconfig.PluginSpec, 0, len(decls))
	var inputs []string

	for i, decl := range decls {
		path := fmt.Sprintf("plugins[%d]", i)
		name := strings.TrimSpace(decl.Name)
		if name == "" {
			c.Add(validation.MissingField, path+".name", "plugin name is required")
			continue
		}

		decoded, problems := plugins.Decode(name, decl.Options)
		for _, p := range problems {
			optionPath := path + ".options"
			if p.Key != "" {
				optionPath += "." + p.Key
			}
			c.Add(validation.InvalidValue, optionPath, "%s", p.Message)
		}

		if laravel, ok := decoded.Known.(buildconfig.LaravelOptions); ok {
			inputs = append(inputs, laravel.Input...)
		}

		specs = append(specs, buildconfig.PluginSpec{
			Name:       name,
			Options:    decl.Options,
			Known:      decoded.Known,
			Extensions: decoded.Extensions,
		})
	}
	return specs, inputs
}

// resolveInputs merges top-level inputs with plugin-declared inputs.
// Top-level entries come first; duplicates are dropped.
func (r *Resolver) resolveInputs(c *validation.Collector, declared, fromPlugins []string) []string {
	for i, input := range declared {
		if strings.TrimSpace(input) == "" {
			c.Add(validation.MissingField, fmt.Sprintf("input[%d]", i), "entry input cannot be empty")
		}
	}

	inputs := mergeStringSlices(nonEmpty(declared), fromPlugins)
	if len(inputs) == 0 {
		c.Add(validation.MissingField, "input", "at least one entry input file is required")
	}
	return inputs
}

// resolveAliases checks keys for presence and uniqueness and targets for
// existing directories. Only the first declaration of a key is kept.
func (r *Resolver) resolveAliases(c *validation.Collector, decls config.AliasList) []buildconfig.Alias {
	aliases := make([]buildconfig.Alias, 0, len(decls))
	seen := make(map[string]bool, len(decls))

	for i, entry := range decls {
		if strings.TrimSpace(entry.Key) == "" {
			c.Add(validation.MissingField, fmt.Sprintf("aliases[%d]", i), "alias key cannot be empty")
			continue
		}

		path := fmt.Sprintf("aliases[%s]", entry.Key)
		if seen[entry.Key] {
			c.Add(validation.DuplicateAliasKey, path, "alias %q is declared more than once", entry.Key)
			continue
		}
		seen[entry.Key] = true

		if strings.TrimSpace(entry.Path) == "" {
			c.Add(validation.MissingField, path, "alias target is required")
			continue
		}

		target := entry.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(r.root, target)
		}
		target = filepath.Clean(target)

		info, err := os.Stat(target)
		switch {
		case err != nil:
			c.Add(validation.InvalidPath, path, "alias target %s does not exist", target)
			continue
		case !info.IsDir():
			c.Add(validation.InvalidPath, path, "alias target %s is not a directory", target)
			continue
		}

		aliases = append(aliases, buildconfig.Alias{Key: entry.Key, Path: target})
	}
	return aliases
}

func (r *Resolver) resolveServer(c *validation.Collector, decl config.ServerDeclaration) buildconfig.DevServerSettings {
	c.Merge(validation.Struct("server", &decl)...)

	settings := buildconfig.DevServerSettings{
		Host:    decl.Host,
		Port:    DefaultPort,
		HMRHost: decl.HMR.Host,
	}
	if settings.Host == "" {
		settings.Host = DefaultHost
	}

	if decl.Port != nil {
		port, err := validation.ParsePort(decl.Port)
		if err != nil {
			c.Add(validation.InvalidPort, "server.port", "%s", err.Error())
		}
		settings.Port = port
	}
	if decl.HMR.Port != nil {
		port, err := validation.ParsePort(decl.HMR.Port)
		if err != nil {
			c.Add(validation.InvalidPort, "server.hmr.port", "%s", err.Error())
		}
		settings.HMRPort = port
	}
	return settings
}

func (r *Resolver) resolvePWA(c *validation.Collector, decl *config.PWADeclaration) buildconfig.PwaManifestSpec {
	c.Merge(validation.Struct("pwa", decl)...)

	manifest := decl.Manifest
	spec := buildconfig.PwaManifestSpec{
		RegisterType:    DefaultRegisterType,
		Name:            manifest.Name,
		ShortName:       manifest.ShortName,
		Description:     manifest.Description,
		ThemeColor:      manifest.ThemeColor,
		BackgroundColor: manifest.BackgroundColor,
		Display:         DefaultDisplay,
		StartURL:        manifest.StartURL,
		Scope:           manifest.Scope,
		GlobPatterns:    decl.Workbox.GlobPatterns,
	}

	// Enum values were checked by the oneof tags above.
	if decl.RegisterType != "" {
		if rt, err := buildconfig.ParseRegisterType(decl.RegisterType); err == nil {
			spec.RegisterType = rt
		}
	}
	if manifest.Display != "" {
		if mode, err := buildconfig.ParseDisplayMode(manifest.Display); err == nil {
			spec.Display = mode
		}
	}
	if spec.StartURL == "" {
		spec.StartURL = DefaultStartURL
	}

	for _, icon := range manifest.Icons {
		spec.Icons = append(spec.Icons, buildconfig.IconSpec{
			Src:     icon.Src,
			Sizes:   icon.Sizes,
			Type:    icon.Type,
			Purpose: icon.Purpose,
		})
	}

	for i, rule := range decl.Workbox.RuntimeCaching {
		if resolved, ok := resolveCacheRule(c, fmt.Sprintf("pwa.workbox.runtimeCaching[%d]", i), rule); ok {
			spec.Caching.Rules = append(spec.Caching.Rules, resolved)
		}
	}
	return spec
}

func resolveCacheRule(c *validation.Collector, path string, decl config.RuntimeCachingDeclaration) (buildconfig.CacheRule, bool) {
	before := c.Len()
	rule := buildconfig.CacheRule{CacheName: decl.Options.CacheName}

	if decl.URLPattern == "" {
		c.Add(validation.MissingField, path+".urlPattern", "is required")
	} else if pattern, err := buildconfig.CompileURLPattern(decl.URLPattern); err != nil {
		c.Add(validation.InvalidPattern, path+".urlPattern", "%s", err.Error())
	} else {
		rule.Pattern = pattern
	}

	if decl.Handler == "" {
		c.Add(validation.MissingField, path+".handler", "is required")
	} else if strategy, err := buildconfig.ParseStrategy(decl.Handler); err != nil {
		c.Add(validation.UnknownStrategy, path+".handler", "%s; must be one of %v", err.Error(), buildconfig.Strategies)
	} else {
		rule.Strategy = strategy
	}

	if exp := decl.Options.Expiration; exp != nil {
		expPath := path + ".options.expiration"
		if exp.MaxEntries != nil {
			n, err := validation.NonNegativeInt(exp.MaxEntries)
			if err != nil {
				c.Add(validation.InvalidExpiration, expPath+".maxEntries", "%s", err.Error())
			}
			rule.Expiration.MaxEntries = n
		}
		if exp.MaxAgeSeconds != nil {
			n, err := validation.NonNegativeInt(exp.MaxAgeSeconds)
			if err != nil {
				c.Add(validation.InvalidExpiration, expPath+".maxAgeSeconds", "%s", err.Error())
			}
			rule.Expiration.MaxAgeSeconds = n
		}
	}

	return rule, c.Len() == before
}

// mergeStringSlices combines two string slices, removing duplicates
// The first slice items come first, followed by the second slice items
func mergeStringSlices(first, second []string) []string {
	seen := make(map[string]bool, len(first)+len(second))
	var result []string

	for _, item := range first {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	for _, item := range second {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
