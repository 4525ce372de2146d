package config

// Builder assembles a Declaration in code, as an alternative to a
// declaration file. It performs no validation; the resolver does.
type Builder struct {
	decl Declaration
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithInput appends entry input files.
func (b *Builder) WithInput(files ...string) *Builder {
	b.decl.Input = append(b.decl.Input, files...)
	return b
}

// WithPlugin appends a plugin. Options may be nil.
func (b *Builder) WithPlugin(name string, options map[string]any) *Builder {
	b.decl.Plugins = append(b.decl.Plugins, PluginDeclaration{Name: name, Options: options})
	return b
}

// WithAlias appends an alias. Repeated keys are kept and reported at
// resolution time.
func (b *Builder) WithAlias(key, path string) *Builder {
	b.decl.Aliases = append(b.decl.Aliases, AliasEntry{Key: key, Path: path})
	return b
}

// WithServer sets the dev-server host and port. Port may be any raw
// numeric shape accepted in a declaration file.
func (b *Builder) WithServer(host string, port any) *Builder {
	b.decl.Server.Host = host
	b.decl.Server.Port = port
	return b
}

// WithHMR sets the hot module replacement endpoint.
func (b *Builder) WithHMR(host string, port any) *Builder {
	b.decl.Server.HMR = HMRDeclaration{Host: host, Port: port}
	return b
}

// WithPWA sets the progressive web app block.
func (b *Builder) WithPWA(pwa PWADeclaration) *Builder {
	b.decl.PWA = &pwa
	return b
}

// WithCacheRule appends a runtime caching rule, creating the PWA block
// if needed.
func (b *Builder) WithCacheRule(rule RuntimeCachingDeclaration) *Builder {
	if b.decl.PWA == nil {
		b.decl.PWA = &PWADeclaration{}
	}
	b.decl.PWA.Workbox.RuntimeCaching = append(b.decl.PWA.Workbox.RuntimeCaching, rule)
	return b
}

// Build returns the assembled declaration. The builder may be reused;
// later calls do not affect declarations already returned.
func (b *Builder) Build() Declaration {
	out := b.decl
	out.Input = append([]string(nil), b.decl.Input...)
	out.Plugins = append([]PluginDeclaration(nil), b.decl.Plugins...)
	out.Aliases = append(AliasList(nil), b.decl.Aliases...)
	if b.decl.PWA != nil {
		pwa := *b.decl.PWA
		pwa.Manifest.Icons = append([]IconDeclaration(nil), b.decl.PWA.Manifest.Icons...)
		pwa.Workbox.GlobPatterns = append([]string(nil), b.decl.PWA.Workbox.GlobPatterns...)
		pwa.Workbox.RuntimeCaching = append([]RuntimeCachingDeclaration(nil), b.decl.PWA.Workbox.RuntimeCaching...)
		out.PWA = &pwa
	}
	return out
}
