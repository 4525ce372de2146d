package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvOverridesFrom(t *testing.T) {
	overrides, err := ParseEnvOverridesFrom(map[string]string{
		"BUILDCFG_SERVER_HOST": "127.0.0.1",
		"BUILDCFG_SERVER_PORT": "4000",
		"BUILDCFG_HMR_PORT":    "4001",
		"SERVER_PORT":          "9999",
	})
	require.NoError(t, err)

	assert.Equal(t, EnvOverrides{ServerHost: "127.0.0.1", ServerPort: "4000", HMRPort: "4001"}, overrides)
	assert.False(t, overrides.IsEmpty())
}

func TestParseEnvOverrides_Process(t *testing.T) {
	t.Setenv("BUILDCFG_HMR_HOST", "dev.local")

	overrides, err := ParseEnvOverrides()
	require.NoError(t, err)
	assert.Equal(t, "dev.local", overrides.HMRHost)
}

func TestEnvOverrides_Apply(t *testing.T) {
	decl := &Declaration{Server: ServerDeclaration{Host: "0.0.0.0", Port: 3000}}

	EnvOverrides{}.Apply(decl)
	assert.Equal(t, 3000, decl.Server.Port, "empty overrides change nothing")
	assert.True(t, EnvOverrides{}.IsEmpty())

	EnvOverrides{ServerPort: "4000", HMRHost: "localhost", HMRPort: "4001"}.Apply(decl)
	assert.Equal(t, "0.0.0.0", decl.Server.Host)
	assert.Equal(t, "4000", decl.Server.Port)
	assert.Equal(t, "localhost", decl.Server.HMR.Host)
	assert.Equal(t, "4001", decl.Server.HMR.Port)
}
