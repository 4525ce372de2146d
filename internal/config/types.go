package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Declaration is the raw build declaration as read from buildcfg.yaml.
// It is not validated; pass it to the resolver to obtain a canonical
// BuildConfiguration.
type Declaration struct {
	Input   []string            `yaml:"input,omitempty"`
	Plugins []PluginDeclaration `yaml:"plugins,omitempty"`
	Aliases AliasList           `yaml:"aliases,omitempty"`
	Server  ServerDeclaration   `yaml:"server,omitempty"`
	PWA     *PWADeclaration     `yaml:"pwa,omitempty"`
}

// PluginDeclaration is one entry of the plugin list. In YAML it may be
// written as a bare name ("- vue") or as a mapping with name and options.
type PluginDeclaration struct {
	Name    string         `yaml:"name"`
	Options map[string]any `yaml:"options,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (p *PluginDeclaration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		p.Options = nil
		return nil
	}
	type plain PluginDeclaration
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*p = PluginDeclaration(decoded)
	return nil
}

// AliasEntry maps an alias key to a target path, relative to the
// project root unless absolute.
type AliasEntry struct {
	Key  string `yaml:"key"`
	Path string `yaml:"path"`
}

// AliasList is the ordered alias declaration. Unlike a Go map it keeps
// duplicate keys so they can be reported instead of silently collapsed.
type AliasList []AliasEntry

// UnmarshalYAML accepts a mapping ("@": resources/js) or a sequence of
// {key, path} entries. Mapping keys are read straight from the node so
// duplicates survive decoding.
func (l *AliasList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		entries := make(AliasList, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			keyNode, pathNode := value.Content[i], value.Content[i+1]
			if pathNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: alias %q must map to a path string", pathNode.Line, keyNode.Value)
			}
			entries = append(entries, AliasEntry{Key: keyNode.Value, Path: pathNode.Value})
		}
		*l = entries
		return nil
	case yaml.SequenceNode:
		var entries []AliasEntry
		if err := value.Decode(&entries); err != nil {
			return err
		}
		*l = entries
		return nil
	default:
		return fmt.Errorf("line %d: aliases must be a mapping or a list", value.Line)
	}
}

// Keys returns the declared alias keys in order, duplicates included.
func (l AliasList) Keys() []string {
	keys := make([]string, 0, len(l))
	for _, entry := range l {
		keys = append(keys, entry.Key)
	}
	return keys
}

// ServerDeclaration is the dev-server block. Port values are kept raw so
// that malformed values are reported rather than rejected by the decoder.
type ServerDeclaration struct {
	Host string         `yaml:"host,omitempty" validate:"omitempty,ip|hostname_rfc1123"`
	Port any            `yaml:"port,omitempty"` // int, whole float or digit string
	HMR  HMRDeclaration `yaml:"hmr,omitempty"`
}

// HMRDeclaration is the hot module replacement endpoint.
type HMRDeclaration struct {
	Host string `yaml:"host,omitempty" validate:"omitempty,ip|hostname_rfc1123"`
	Port any    `yaml:"port,omitempty"`
}

// PWADeclaration is the progressive web app block.
type PWADeclaration struct {
	RegisterType string              `yaml:"registerType,omitempty" validate:"omitempty,oneof=autoUpdate prompt"`
	Manifest     ManifestDeclaration `yaml:"manifest"`
	Workbox      WorkboxDeclaration  `yaml:"workbox,omitempty"`
}

// ManifestDeclaration is the web app manifest.
type ManifestDeclaration struct {
	Name            string            `yaml:"name" validate:"required"`
	ShortName       string            `yaml:"short_name,omitempty"`
	Description     string            `yaml:"description,omitempty"`
	ThemeColor      string            `yaml:"theme_color,omitempty" validate:"omitempty,css_color"`
	BackgroundColor string            `yaml:"background_color,omitempty" validate:"omitempty,css_color"`
	Display         string            `yaml:"display,omitempty" validate:"omitempty,oneof=standalone fullscreen minimal-ui browser"`
	StartURL        string            `yaml:"start_url,omitempty"`
	Scope           string            `yaml:"scope,omitempty"`
	Icons           []IconDeclaration `yaml:"icons,omitempty" validate:"dive"`
}

// IconDeclaration is one manifest icon. The declared sizes are not
// compared against the image itself.
type IconDeclaration struct {
	Src     string `yaml:"src" validate:"required"`
	Sizes   string `yaml:"sizes" validate:"required,icon_sizes"`
	Type    string `yaml:"type" validate:"required,mime_type"`
	Purpose string `yaml:"purpose,omitempty"`
}

// WorkboxDeclaration holds the service-worker generator inputs.
type WorkboxDeclaration struct {
	GlobPatterns   []string                    `yaml:"globPatterns,omitempty" validate:"dive,glob_pattern"`
	RuntimeCaching []RuntimeCachingDeclaration `yaml:"runtimeCaching,omitempty"`
}

// RuntimeCachingDeclaration is one runtime caching rule.
type RuntimeCachingDeclaration struct {
	URLPattern string                  `yaml:"urlPattern"`
	Handler    string                  `yaml:"handler"`
	Options    CacheOptionsDeclaration `yaml:"options,omitempty"`
}

// CacheOptionsDeclaration are the options of a runtime caching rule.
type CacheOptionsDeclaration struct {
	CacheName  string                 `yaml:"cacheName,omitempty"`
	Expiration *ExpirationDeclaration `yaml:"expiration,omitempty"`
}

// ExpirationDeclaration bounds a runtime cache. Values are kept raw so
// that negative or fractional numbers can be reported.
type ExpirationDeclaration struct {
	MaxEntries    any `yaml:"maxEntries,omitempty"`
	MaxAgeSeconds any `yaml:"maxAgeSeconds,omitempty"`
}
