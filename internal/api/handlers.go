package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nauticalab/buildcfg/internal/templates"
	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// ConfigSource produces the configuration served by a request. The serve
// command re-reads and re-resolves the declaration on every call so edits
// show up without a restart.
type ConfigSource func() (*buildconfig.BuildConfiguration, error)

// StaticSource serves a configuration that was resolved once.
func StaticSource(cfg *buildconfig.BuildConfiguration) ConfigSource {
	return func() (*buildconfig.BuildConfiguration, error) {
		return cfg, nil
	}
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	// source produces the resolved build configuration
	source ConfigSource
	// version is the application version
	version string
	// gitCommit is the git commit hash of the build
	gitCommit string
	// buildTime is the time when the application was built
	buildTime string
	// goVersion is the Go version used to build the application
	goVersion string
}

// NewHandler creates a new Handler instance
func NewHandler(source ConfigSource, version, gitCommit, buildTime, goVersion string) *Handler {
	return &Handler{
		source:    source,
		version:   version,
		gitCommit: gitCommit,
		buildTime: buildTime,
		goVersion: goVersion,
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Version handles GET /api/v1/version
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, VersionResponse{
		Version:   h.version,
		GitCommit: h.gitCommit,
		BuildTime: h.buildTime,
		GoVersion: h.goVersion,
	})
}

// Config handles GET /api/v1/config
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w)
	if !ok {
		return
	}
	respondSuccess(w, cfg.View())
}

// Aliases handles GET /api/v1/config/aliases
func (h *Handler) Aliases(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w)
	if !ok {
		return
	}
	respondSuccess(w, cfg.AliasMap())
}

// MatchCacheRule handles GET /api/v1/config/caching/match?url=...
// It reports the first runtime caching rule whose pattern matches url.
func (h *Handler) MatchCacheRule(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		respondBadRequest(w, "query parameter url is required")
		return
	}

	cfg, ok := h.resolve(w)
	if !ok {
		return
	}

	pwa, ok := cfg.PWA()
	if !ok {
		respondNotFound(w, "configuration has no PWA manifest")
		return
	}

	resp := MatchResponse{URL: url}
	if rule, matched := pwa.Caching.Match(url); matched {
		resp.Matched = true
		resp.Rule = &rule
	}
	respondSuccess(w, resp)
}

// Manifest handles GET /manifest.webmanifest
func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w)
	if !ok {
		return
	}
	if _, ok := cfg.PWA(); !ok {
		respondNotFound(w, "configuration has no PWA manifest")
		return
	}
	h.render(w, templates.WebManifest, "application/manifest+json", cfg)
}

// ViteConfig handles GET /vite.config.mjs
func (h *Handler) ViteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.resolve(w)
	if !ok {
		return
	}
	h.render(w, templates.ViteConfig, "text/javascript; charset=utf-8", cfg)
}

func (h *Handler) render(w http.ResponseWriter, name, contentType string, cfg *buildconfig.BuildConfiguration) {
	var buf bytes.Buffer
	if err := templates.Render(&buf, name, cfg); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render template")
		respondInternalError(w, "failed to render "+name)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// resolve runs the configuration source and writes the error response
// itself when resolution fails.
func (h *Handler) resolve(w http.ResponseWriter) (*buildconfig.BuildConfiguration, bool) {
	cfg, err := h.source()
	if err == nil {
		return cfg, true
	}

	var cfgErr *validation.ConfigError
	if errors.As(err, &cfgErr) {
		resp := InvalidConfigResponse{Error: "invalid build declaration"}
		for _, v := range cfgErr.Violations {
			resp.Violations = append(resp.Violations, ViolationResponse{
				Kind:    v.Kind,
				Path:    v.Path,
				Message: v.Message,
			})
		}
		respondJSON(w, http.StatusUnprocessableEntity, resp)
		return nil, false
	}

	log.Error().Err(err).Msg("failed to load build configuration")
	respondInternalError(w, err.Error())
	return nil, false
}
