package api

import (
	"time"

	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse represents the version information
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion,omitempty"`
}

// ViolationResponse is one validation failure of the served declaration
type ViolationResponse struct {
	Kind    validation.Kind `json:"kind"`
	Path    string          `json:"path"`
	Message string          `json:"message"`
}

// InvalidConfigResponse is returned when the declaration does not resolve
type InvalidConfigResponse struct {
	Error      string              `json:"error"`
	Violations []ViolationResponse `json:"violations"`
}

// MatchResponse reports which runtime caching rule handles a URL
type MatchResponse struct {
	URL     string                 `json:"url"`
	Matched bool                   `json:"matched"`
	Rule    *buildconfig.CacheRule `json:"rule,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
