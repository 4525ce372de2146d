package buildconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileURLPattern(t *testing.T) {
	t.Run("ecmascript syntax", func(t *testing.T) {
		p, err := CompileURLPattern(`^https:\/\/api\.`)
		require.NoError(t, err)
		assert.Equal(t, `^https:\/\/api\.`, p.String())
		assert.True(t, p.MatchString("https://api.example.com/orders"))
		assert.False(t, p.MatchString("https://www.example.com/"))
	})

	t.Run("lookahead is supported", func(t *testing.T) {
		p, err := CompileURLPattern(`^https:\/\/(?!static\.)[^/]+\/api`)
		require.NoError(t, err)
		assert.True(t, p.MatchString("https://example.com/api/x"))
		assert.False(t, p.MatchString("https://static.example.com/api/x"))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := CompileURLPattern("")
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := CompileURLPattern(`^(unclosed`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid pattern")
	})

	t.Run("same source compiles to equal values", func(t *testing.T) {
		a := MustCompileURLPattern(`\.js$`)
		b := MustCompileURLPattern(`\.js$`)
		assert.Equal(t, a, b)
	})
}

func TestURLPattern_ZeroValue(t *testing.T) {
	var p URLPattern
	assert.False(t, p.MatchString("https://api.example.com"))
	assert.Empty(t, p.String())
}

func TestMustCompileURLPattern_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompileURLPattern("[") })
}

func TestURLPattern_JSON(t *testing.T) {
	rule := CacheRule{Pattern: MustCompileURLPattern(`^https:\/\/api\.`), Strategy: NetworkFirst}

	data, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"urlPattern":"^https:\\/\\/api\\."`)

	var decoded CacheRule
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rule, decoded)

	err = json.Unmarshal([]byte(`{"urlPattern":"("}`), &decoded)
	assert.Error(t, err)
}
