// Package buildconfig holds the canonical, validated build configuration
// produced by the resolver and consumed by the bundler and the
// service-worker generator.
//
// A BuildConfiguration is immutable once constructed: every accessor
// returns a copy, so a value can be shared freely between consumers.
package buildconfig

import (
	"encoding/json"
	"maps"
	"slices"
)

// Parts is the staged input of New. The resolver fills it after all
// validation has passed.
type Parts struct {
	Root    string
	Inputs  []string
	Plugins []PluginSpec
	Aliases []Alias
	Server  DevServerSettings
	PWA     *PwaManifestSpec
}

// BuildConfiguration is the root of the resolved configuration tree.
type BuildConfiguration struct {
	root    string
	inputs  []string
	plugins []PluginSpec
	aliases []Alias
	server  DevServerSettings
	pwa     *PwaManifestSpec
}

// New assembles a BuildConfiguration from p, copying every slice and map
// so later changes to p are not observed.
func New(p Parts) *BuildConfiguration {
	cfg := &BuildConfiguration{
		root:    p.Root,
		inputs:  cloneSlice(p.Inputs),
		aliases: cloneSlice(p.Aliases),
		server:  p.Server,
	}
	for _, plugin := range p.Plugins {
		cfg.plugins = append(cfg.plugins, plugin.clone())
	}
	if p.PWA != nil {
		pwa := p.PWA.clone()
		cfg.pwa = &pwa
	}
	return cfg
}

// Root returns the project root the configuration was resolved against.
func (c *BuildConfiguration) Root() string { return c.root }

// Inputs returns the entry input files in declaration order.
func (c *BuildConfiguration) Inputs() []string { return cloneSlice(c.inputs) }

// Plugins returns the plugin sequence in application order.
func (c *BuildConfiguration) Plugins() []PluginSpec {
	out := make([]PluginSpec, 0, len(c.plugins))
	for _, p := range c.plugins {
		out = append(out, p.clone())
	}
	return out
}

// Plugin returns the first plugin with the given name.
func (c *BuildConfiguration) Plugin(name string) (PluginSpec, bool) {
	for _, p := range c.plugins {
		if p.Name == name {
			return p.clone(), true
		}
	}
	return PluginSpec{}, false
}

// Aliases returns the path aliases in declaration order.
func (c *BuildConfiguration) Aliases() []Alias { return cloneSlice(c.aliases) }

// AliasMap returns the aliases keyed by alias string.
func (c *BuildConfiguration) AliasMap() map[string]string {
	out := make(map[string]string, len(c.aliases))
	for _, a := range c.aliases {
		out[a.Key] = a.Path
	}
	return out
}

// Server returns the dev-server settings.
func (c *BuildConfiguration) Server() DevServerSettings { return c.server }

// PWA returns the manifest spec and whether a PWA block was declared.
func (c *BuildConfiguration) PWA() (PwaManifestSpec, bool) {
	if c.pwa == nil {
		return PwaManifestSpec{}, false
	}
	return c.pwa.clone(), true
}

// View is the serializable form of a BuildConfiguration.
type View struct {
	Root    string            `json:"root" yaml:"root"`
	Inputs  []string          `json:"input" yaml:"input"`
	Plugins []PluginSpec      `json:"plugins" yaml:"plugins"`
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Server  DevServerSettings `json:"server" yaml:"server"`
	PWA     *PwaManifestSpec  `json:"pwa,omitempty" yaml:"pwa,omitempty"`
}

// View returns a detached, serializable copy of the configuration.
func (c *BuildConfiguration) View() View {
	v := View{
		Root:    c.root,
		Inputs:  c.Inputs(),
		Plugins: c.Plugins(),
		Server:  c.server,
	}
	if len(c.aliases) > 0 {
		v.Aliases = c.AliasMap()
	}
	if pwa, ok := c.PWA(); ok {
		v.PWA = &pwa
	}
	return v
}

// MarshalJSON encodes the configuration through its View.
func (c *BuildConfiguration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.View())
}

// MarshalYAML encodes the configuration through its View.
func (c *BuildConfiguration) MarshalYAML() (any, error) {
	return c.View(), nil
}

func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// cloneMap copies m, descending into nested option maps and lists.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
