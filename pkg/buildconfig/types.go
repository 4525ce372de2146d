package buildconfig

// PluginSpec is a named bundler plugin with its option bag.
// Position in BuildConfiguration.Plugins is the application order.
type PluginSpec struct {
	Name string `json:"name" yaml:"name"`
	// Options is the declared option bag, echoed back unchanged.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	// Known holds the typed options for recognized plugin kinds, nil otherwise.
	Known PluginOptions `json:"-" yaml:"-"`
	// Extensions holds option keys the known schema does not recognize.
	// For unrecognized plugins it holds every option.
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Alias maps a short import prefix to an absolute directory.
type Alias struct {
	Key  string `json:"key" yaml:"key"`
	Path string `json:"path" yaml:"path"`
}

// DevServerSettings holds the dev-server bind address and HMR endpoint.
type DevServerSettings struct {
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	HMRHost string `json:"hmrHost,omitempty" yaml:"hmrHost,omitempty"`
	HMRPort int    `json:"hmrPort,omitempty" yaml:"hmrPort,omitempty"` // 0 means same as Port
}

// IconSpec is one entry of the web app manifest icon list.
type IconSpec struct {
	Src     string `json:"src" yaml:"src"`
	Sizes   string `json:"sizes" yaml:"sizes"`
	Type    string `json:"type" yaml:"type"`
	Purpose string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
}

// ExpirationPolicy bounds a runtime cache. Zero values mean no limit.
type ExpirationPolicy struct {
	MaxEntries    int `json:"maxEntries,omitempty" yaml:"maxEntries,omitempty"`
	MaxAgeSeconds int `json:"maxAgeSeconds,omitempty" yaml:"maxAgeSeconds,omitempty"`
}

// CacheRule routes requests matching Pattern through a caching Strategy.
type CacheRule struct {
	Pattern    URLPattern       `json:"urlPattern" yaml:"urlPattern"`
	Strategy   Strategy         `json:"handler" yaml:"handler"`
	CacheName  string           `json:"cacheName,omitempty" yaml:"cacheName,omitempty"`
	Expiration ExpirationPolicy `json:"expiration" yaml:"expiration"`
}

// CachingRuleSet is the ordered list of runtime caching rules. The first
// matching rule wins.
type CachingRuleSet struct {
	Rules []CacheRule `json:"rules" yaml:"rules"`
}

// Match returns the first rule whose pattern matches url.
func (s CachingRuleSet) Match(url string) (CacheRule, bool) {
	for _, rule := range s.Rules {
		if rule.Pattern.MatchString(url) {
			return rule, true
		}
	}
	return CacheRule{}, false
}

// PwaManifestSpec describes the installable manifest and the service
// worker inputs handed to the service-worker generator.
type PwaManifestSpec struct {
	RegisterType    RegisterType   `json:"registerType" yaml:"registerType"`
	Name            string         `json:"name" yaml:"name"`
	ShortName       string         `json:"short_name,omitempty" yaml:"short_name,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	ThemeColor      string         `json:"theme_color,omitempty" yaml:"theme_color,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	Display         DisplayMode    `json:"display" yaml:"display"`
	StartURL        string         `json:"start_url" yaml:"start_url"`
	Scope           string         `json:"scope,omitempty" yaml:"scope,omitempty"`
	Icons           []IconSpec     `json:"icons,omitempty" yaml:"icons,omitempty"`
	GlobPatterns    []string       `json:"globPatterns,omitempty" yaml:"globPatterns,omitempty"`
	Caching         CachingRuleSet `json:"runtimeCaching" yaml:"runtimeCaching"`
}

func (p PwaManifestSpec) clone() PwaManifestSpec {
	out := p
	out.Icons = cloneSlice(p.Icons)
	out.GlobPatterns = cloneSlice(p.GlobPatterns)
	out.Caching.Rules = cloneSlice(p.Caching.Rules)
	return out
}

func (p PluginSpec) clone() PluginSpec {
	out := p
	out.Options = cloneMap(p.Options)
	out.Extensions = cloneMap(p.Extensions)
	if p.Known != nil {
		out.Known = p.Known.clone()
	}
	return out
}
