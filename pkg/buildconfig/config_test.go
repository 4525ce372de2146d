package buildconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleParts() Parts {
	return Parts{
		Root:   "/srv/app",
		Inputs: []string{"resources/js/app.js"},
		Plugins: []PluginSpec{
			{
				Name:    PluginLaravel,
				Options: map[string]any{"input": []any{"resources/js/app.js"}, "refresh": true},
				Known:   LaravelOptions{Input: []string{"resources/js/app.js"}, Refresh: true},
			},
			{Name: PluginVue, Known: VueOptions{}},
		},
		Aliases: []Alias{{Key: "@", Path: "/srv/app/resources/js"}},
		Server:  DevServerSettings{Host: "0.0.0.0", Port: 3000},
		PWA: &PwaManifestSpec{
			Name:     "Happy Order",
			Display:  DisplayStandalone,
			StartURL: "/",
			Icons:    []IconSpec{{Src: "/icon.png", Sizes: "192x192", Type: "image/png"}},
			Caching: CachingRuleSet{Rules: []CacheRule{{
				Pattern:  MustCompileURLPattern(`^https:\/\/api\.`),
				Strategy: StaleWhileRevalidate,
			}}},
		},
	}
}

func TestNew_CopiesParts(t *testing.T) {
	parts := sampleParts()
	cfg := New(parts)

	parts.Inputs[0] = "changed.js"
	parts.Aliases[0].Path = "/elsewhere"
	parts.Plugins[0].Options["refresh"] = false
	parts.PWA.Icons[0].Src = "/other.png"

	assert.Equal(t, []string{"resources/js/app.js"}, cfg.Inputs())
	assert.Equal(t, "/srv/app/resources/js", cfg.Aliases()[0].Path)
	assert.Equal(t, true, cfg.Plugins()[0].Options["refresh"])

	pwa, ok := cfg.PWA()
	require.True(t, ok)
	assert.Equal(t, "/icon.png", pwa.Icons[0].Src)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	cfg := New(sampleParts())

	inputs := cfg.Inputs()
	inputs[0] = "mutated.js"
	assert.Equal(t, "resources/js/app.js", cfg.Inputs()[0])

	plugins := cfg.Plugins()
	plugins[0].Options["input"].([]any)[0] = "mutated.js"
	laravel := plugins[0].Known.(LaravelOptions)
	laravel.Input[0] = "mutated.js"

	fresh, ok := cfg.Plugin(PluginLaravel)
	require.True(t, ok)
	assert.Equal(t, []any{"resources/js/app.js"}, fresh.Options["input"])
	assert.Equal(t, []string{"resources/js/app.js"}, fresh.Known.(LaravelOptions).Input)

	pwa, _ := cfg.PWA()
	pwa.Caching.Rules[0].CacheName = "mutated"
	again, _ := cfg.PWA()
	assert.Empty(t, again.Caching.Rules[0].CacheName)
}

func TestPlugin(t *testing.T) {
	cfg := New(sampleParts())

	vue, ok := cfg.Plugin(PluginVue)
	require.True(t, ok)
	assert.Equal(t, PluginVue, vue.Known.Kind())

	_, ok = cfg.Plugin("react")
	assert.False(t, ok)
}

func TestPluginOrderPreserved(t *testing.T) {
	cfg := New(Parts{Plugins: []PluginSpec{{Name: "b"}, {Name: "a"}, {Name: "c"}}})

	var names []string
	for _, p := range cfg.Plugins() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestPWA_Absent(t *testing.T) {
	cfg := New(Parts{Root: "/srv/app"})
	_, ok := cfg.PWA()
	assert.False(t, ok)
	assert.Nil(t, cfg.View().PWA)
	assert.Nil(t, cfg.View().Aliases)
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New(sampleParts()))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "/srv/app", doc["root"])
	assert.Equal(t, map[string]any{"@": "/srv/app/resources/js"}, doc["aliases"])

	rules := doc["pwa"].(map[string]any)["runtimeCaching"].(map[string]any)["rules"].([]any)
	assert.Equal(t, `^https:\/\/api\.`, rules[0].(map[string]any)["urlPattern"])
}

func TestMarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(New(sampleParts()))
	require.NoError(t, err)

	var view View
	require.NoError(t, yaml.Unmarshal(data, &view))
	assert.Equal(t, 3000, view.Server.Port)
	require.NotNil(t, view.PWA)
	assert.Equal(t, `^https:\/\/api\.`, view.PWA.Caching.Rules[0].Pattern.String())
	assert.Equal(t, StaleWhileRevalidate, view.PWA.Caching.Rules[0].Strategy)
}

func TestCachingRuleSet_Match(t *testing.T) {
	set := CachingRuleSet{Rules: []CacheRule{
		{Pattern: MustCompileURLPattern(`^https:\/\/api\.`), Strategy: NetworkFirst, CacheName: "api"},
		{Pattern: MustCompileURLPattern(`\.png$`), Strategy: CacheFirst, CacheName: "images"},
		{Pattern: MustCompileURLPattern(`^https:\/\/api\.example`), Strategy: CacheOnly, CacheName: "shadowed"},
	}}

	rule, ok := set.Match("https://api.example.com/logo.png")
	require.True(t, ok)
	assert.Equal(t, "api", rule.CacheName, "first matching rule wins")

	rule, ok = set.Match("https://cdn.example.com/logo.png")
	require.True(t, ok)
	assert.Equal(t, "images", rule.CacheName)

	_, ok = set.Match("https://cdn.example.com/app.js")
	assert.False(t, ok)
}
