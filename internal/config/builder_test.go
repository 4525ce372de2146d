package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder().
		WithInput("resources/js/app.js").
		WithPlugin("laravel", map[string]any{"refresh": true}).
		WithPlugin("vue", nil).
		WithAlias("@", "resources/js").
		WithAlias("@", "resources/ts").
		WithServer("0.0.0.0", 3000).
		WithHMR("localhost", nil).
		WithCacheRule(RuntimeCachingDeclaration{URLPattern: `^https:\/\/api\.`, Handler: "NetworkFirst"})

	decl := b.Build()
	assert.Equal(t, []string{"resources/js/app.js"}, decl.Input)
	assert.Equal(t, []string{"laravel", "vue"}, []string{decl.Plugins[0].Name, decl.Plugins[1].Name})
	assert.Equal(t, []string{"@", "@"}, decl.Aliases.Keys())
	assert.Equal(t, 3000, decl.Server.Port)
	assert.Equal(t, "localhost", decl.Server.HMR.Host)
	require.NotNil(t, decl.PWA)
	assert.Len(t, decl.PWA.Workbox.RuntimeCaching, 1)

	// Later builder calls do not leak into earlier results
	b.WithInput("other.js").WithCacheRule(RuntimeCachingDeclaration{URLPattern: `\.png$`, Handler: "CacheFirst"})
	assert.Len(t, decl.Input, 1)
	assert.Len(t, decl.PWA.Workbox.RuntimeCaching, 1)
}

func TestBuilder_WithPWA(t *testing.T) {
	decl := NewBuilder().
		WithPWA(PWADeclaration{Manifest: ManifestDeclaration{Name: "Happy Order"}}).
		WithCacheRule(RuntimeCachingDeclaration{URLPattern: "api", Handler: "NetworkOnly"}).
		Build()

	require.NotNil(t, decl.PWA)
	assert.Equal(t, "Happy Order", decl.PWA.Manifest.Name)
	assert.Len(t, decl.PWA.Workbox.RuntimeCaching, 1)
}
