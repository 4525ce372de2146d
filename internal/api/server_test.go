package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

func testConfig(withPWA bool) *buildconfig.BuildConfiguration {
	parts := buildconfig.Parts{
		Root:    "/srv/app",
		Inputs:  []string{"resources/js/app.js"},
		Plugins: []buildconfig.PluginSpec{{Name: "vue"}},
		Aliases: []buildconfig.Alias{{Key: "@", Path: "/srv/app/resources/js"}},
		Server:  buildconfig.DevServerSettings{Host: "0.0.0.0", Port: 3000},
	}
	if withPWA {
		parts.PWA = &buildconfig.PwaManifestSpec{
			RegisterType: buildconfig.RegisterAutoUpdate,
			Name:         "Happy Order",
			ShortName:    "HappyOrder",
			Display:      buildconfig.DisplayStandalone,
			StartURL:     "/",
			Caching: buildconfig.CachingRuleSet{Rules: []buildconfig.CacheRule{{
				Pattern:    buildconfig.MustCompileURLPattern(`^https:\/\/api\.`),
				Strategy:   buildconfig.StaleWhileRevalidate,
				CacheName:  "api-cache",
				Expiration: buildconfig.ExpirationPolicy{MaxEntries: 100, MaxAgeSeconds: 86400},
			}}},
		}
	}
	return buildconfig.New(parts)
}

func newTestServer(t *testing.T, source ConfigSource) http.Handler {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Host:      "127.0.0.1",
		Port:      5174,
		Source:    source,
		Logger:    zerolog.Nop(),
		Version:   "1.2.3",
		GitCommit: "abc1234",
		BuildTime: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5174", srv.Addr())
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresSource(t *testing.T) {
	_, err := NewServer(ServerConfig{Port: 1})
	require.Error(t, err)
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestServer(t, StaticSource(testConfig(false)))

	rec := get(t, h, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)

	rec = get(t, h, "/api/v1/version")
	require.Equal(t, http.StatusOK, rec.Code)
	var version VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &version))
	assert.Equal(t, "1.2.3", version.Version)
	assert.Equal(t, "abc1234", version.GitCommit)
}

func TestConfigEndpoint(t *testing.T) {
	h := newTestServer(t, StaticSource(testConfig(true)))

	rec := get(t, h, "/api/v1/config")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/srv/app", body["root"])
	assert.Equal(t, []any{"resources/js/app.js"}, body["input"])

	server := body["server"].(map[string]any)
	assert.EqualValues(t, 3000, server["port"])

	pwa := body["pwa"].(map[string]any)
	rules := pwa["runtimeCaching"].(map[string]any)["rules"].([]any)
	require.Len(t, rules, 1)
	rule := rules[0].(map[string]any)
	assert.Equal(t, `^https:\/\/api\.`, rule["urlPattern"])
	assert.Equal(t, "StaleWhileRevalidate", rule["handler"])
}

func TestAliasesEndpoint(t *testing.T) {
	h := newTestServer(t, StaticSource(testConfig(false)))

	rec := get(t, h, "/api/v1/config/aliases")
	require.Equal(t, http.StatusOK, rec.Code)

	var aliases map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliases))
	assert.Equal(t, map[string]string{"@": "/srv/app/resources/js"}, aliases)
}

func TestMatchCacheRule(t *testing.T) {
	tests := []struct {
		name        string
		withPWA     bool
		target      string
		wantCode    int
		wantMatched bool
	}{
		{name: "matching url", withPWA: true, target: "/api/v1/config/caching/match?url=https://api.example.com/orders", wantCode: http.StatusOK, wantMatched: true},
		{name: "non matching url", withPWA: true, target: "/api/v1/config/caching/match?url=https://cdn.example.com/app.js", wantCode: http.StatusOK},
		{name: "missing url", withPWA: true, target: "/api/v1/config/caching/match", wantCode: http.StatusBadRequest},
		{name: "no pwa block", withPWA: false, target: "/api/v1/config/caching/match?url=https://api.example.com", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, StaticSource(testConfig(tt.withPWA)))
			rec := get(t, h, tt.target)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp struct {
				Matched bool `json:"matched"`
				Rule    *struct {
					CacheName string `json:"cacheName"`
				} `json:"rule"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMatched, resp.Matched)
			if tt.wantMatched {
				require.NotNil(t, resp.Rule)
				assert.Equal(t, "api-cache", resp.Rule.CacheName)
			} else {
				assert.Nil(t, resp.Rule)
			}
		})
	}
}

func TestManifestEndpoint(t *testing.T) {
	t.Run("with pwa", func(t *testing.T) {
		h := newTestServer(t, StaticSource(testConfig(true)))
		rec := get(t, h, "/manifest.webmanifest")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/manifest+json", rec.Header().Get("Content-Type"))

		var manifest map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &manifest))
		assert.Equal(t, "Happy Order", manifest["name"])
		assert.Equal(t, "HappyOrder", manifest["short_name"])
		assert.Equal(t, "standalone", manifest["display"])
	})

	t.Run("without pwa", func(t *testing.T) {
		h := newTestServer(t, StaticSource(testConfig(false)))
		rec := get(t, h, "/manifest.webmanifest")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestViteConfigEndpoint(t *testing.T) {
	h := newTestServer(t, StaticSource(testConfig(true)))
	rec := get(t, h, "/vite.config.mjs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "defineConfig")
	assert.Contains(t, rec.Body.String(), "VitePWA")
}

func TestInvalidDeclaration(t *testing.T) {
	var c validation.Collector
	c.Add(validation.InvalidPort, "server.port", "port 70000 is out of range 1-65535")
	c.Add(validation.MissingField, "input", "at least one entry input file is required")
	source := func() (*buildconfig.BuildConfiguration, error) { return nil, c.Err() }

	h := newTestServer(t, source)
	rec := get(t, h, "/api/v1/config")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp InvalidConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 2)
	assert.Equal(t, validation.InvalidPort, resp.Violations[0].Kind)
	assert.Equal(t, "server.port", resp.Violations[0].Path)
	assert.Equal(t, validation.MissingField, resp.Violations[1].Kind)
}

func TestSourceFailure(t *testing.T) {
	source := func() (*buildconfig.BuildConfiguration, error) {
		return nil, errors.New("declaration file not found: buildcfg.yaml")
	}

	h := newTestServer(t, source)
	rec := get(t, h, "/api/v1/config")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Message, "declaration file not found")
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, StaticSource(testConfig(false)))

	var last int
	for i := 0; i < 101; i++ {
		last = get(t, h, "/api/v1/health").Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
