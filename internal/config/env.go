package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment override variable.
const EnvPrefix = "BUILDCFG_"

// EnvOverrides are dev-server settings that may be overridden per
// machine without touching the declaration files:
//
//	BUILDCFG_SERVER_HOST, BUILDCFG_SERVER_PORT,
//	BUILDCFG_HMR_HOST, BUILDCFG_HMR_PORT
//
// Ports stay strings so that they pass through the same validation as
// declared values.
type EnvOverrides struct {
	ServerHost string `env:"SERVER_HOST"`
	ServerPort string `env:"SERVER_PORT"`
	HMRHost    string `env:"HMR_HOST"`
	HMRPort    string `env:"HMR_PORT"`
}

// ParseEnvOverrides reads overrides from the process environment.
func ParseEnvOverrides() (EnvOverrides, error) {
	return parseEnvOverrides(env.Options{Prefix: EnvPrefix})
}

// ParseEnvOverridesFrom reads overrides from the given variables instead
// of the process environment.
func ParseEnvOverridesFrom(vars map[string]string) (EnvOverrides, error) {
	return parseEnvOverrides(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parseEnvOverrides(opts env.Options) (EnvOverrides, error) {
	var overrides EnvOverrides
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return EnvOverrides{}, fmt.Errorf("error getting env overrides: %w", err)
	}
	return overrides, nil
}

// IsEmpty reports whether no override is set.
func (o EnvOverrides) IsEmpty() bool {
	return o == EnvOverrides{}
}

// Apply writes every set override into decl.
func (o EnvOverrides) Apply(decl *Declaration) {
	if o.ServerHost != "" {
		decl.Server.Host = o.ServerHost
	}
	if o.ServerPort != "" {
		decl.Server.Port = o.ServerPort
	}
	if o.HMRHost != "" {
		decl.Server.HMR.Host = o.HMRHost
	}
	if o.HMRPort != "" {
		decl.Server.HMR.Port = o.HMRPort
	}
}
