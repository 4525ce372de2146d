package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

func TestKnown(t *testing.T) {
	assert.Equal(t, []string{"laravel", "vue"}, Known())
	assert.True(t, IsKnown("vue"))
	assert.False(t, IsKnown("react"))
}

func TestDecode_Laravel(t *testing.T) {
	tests := []struct {
		name     string
		options  map[string]any
		want     buildconfig.LaravelOptions
		wantExt  map[string]any
		problems []string
	}{
		{
			name:    "list input and boolean refresh",
			options: map[string]any{"input": []any{"resources/css/app.css", "resources/js/app.js"}, "refresh": true},
			want:    buildconfig.LaravelOptions{Input: []string{"resources/css/app.css", "resources/js/app.js"}, Refresh: true},
		},
		{
			name:    "single input",
			options: map[string]any{"input": "resources/js/app.js"},
			want:    buildconfig.LaravelOptions{Input: []string{"resources/js/app.js"}},
		},
		{
			name:    "refresh paths",
			options: map[string]any{"input": "app.js", "refresh": []any{"routes/**", "resources/views/**"}},
			want:    buildconfig.LaravelOptions{Input: []string{"app.js"}, Refresh: true, RefreshPaths: []string{"routes/**", "resources/views/**"}},
		},
		{
			name:    "unknown keys are extensions",
			options: map[string]any{"input": "app.js", "ssr": "resources/js/ssr.js", "buildDirectory": "build"},
			want:    buildconfig.LaravelOptions{Input: []string{"app.js"}, BuildDirectory: "build"},
			wantExt: map[string]any{"ssr": "resources/js/ssr.js"},
		},
		{
			name:    "keys are case-sensitive",
			options: map[string]any{"input": "app.js", "INPUT": "other.js", "Refresh": true},
			want:    buildconfig.LaravelOptions{Input: []string{"app.js"}},
			wantExt: map[string]any{"INPUT": "other.js", "Refresh": true},
		},
		{
			name:     "bad input entry",
			options:  map[string]any{"input": []any{"app.js", 42}},
			problems: []string{"input"},
		},
		{
			name:     "bad refresh",
			options:  map[string]any{"refresh": 3},
			problems: []string{"refresh"},
		},
		{
			name:     "bad hot file type",
			options:  map[string]any{"hotFile": 5},
			problems: []string{"hotFile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, problems := Decode(buildconfig.PluginLaravel, tt.options)

			if len(tt.problems) > 0 {
				var keys []string
				for _, p := range problems {
					keys = append(keys, p.Key)
					assert.NotEmpty(t, p.Message)
				}
				assert.Equal(t, tt.problems, keys)
				return
			}

			require.Empty(t, problems)
			assert.Equal(t, tt.want, decoded.Known)
			assert.Equal(t, tt.wantExt, decoded.Extensions)
		})
	}
}

func TestDecode_Vue(t *testing.T) {
	decoded, problems := Decode(buildconfig.PluginVue, map[string]any{
		"include":      `\.vue$`,
		"exclude":      []any{"node_modules/**"},
		"isProduction": true,
		"template":     map[string]any{"transformAssetUrls": map[string]any{"base": nil}},
	})
	require.Empty(t, problems)

	vue, ok := decoded.Known.(buildconfig.VueOptions)
	require.True(t, ok)
	assert.Equal(t, []string{`\.vue$`}, vue.Include)
	assert.Equal(t, []string{"node_modules/**"}, vue.Exclude)
	require.NotNil(t, vue.IsProduction)
	assert.True(t, *vue.IsProduction)
	assert.Contains(t, decoded.Extensions, "template")

	_, problems = Decode(buildconfig.PluginVue, map[string]any{"isProduction": "yes"})
	require.Len(t, problems, 1)
	assert.Equal(t, "isProduction", problems[0].Key)
}

func TestDecode_NoOptions(t *testing.T) {
	decoded, problems := Decode(buildconfig.PluginVue, nil)
	assert.Empty(t, problems)
	assert.Equal(t, buildconfig.VueOptions{}, decoded.Known)
	assert.Nil(t, decoded.Extensions)
}

func TestDecode_UnknownPlugin(t *testing.T) {
	options := map[string]any{"enabled": true, "nested": map[string]any{"a": []any{1, 2}}}

	decoded, problems := Decode("vite-plugin-inspect", options)
	assert.Empty(t, problems)
	assert.Nil(t, decoded.Known)
	assert.Equal(t, options, decoded.Extensions)

	// Extensions are detached from the declared bag
	decoded.Extensions["nested"].(map[string]any)["a"].([]any)[0] = 99
	assert.Equal(t, 1, options["nested"].(map[string]any)["a"].([]any)[0])
}

func TestNormalizeStringList(t *testing.T) {
	got, err := normalizeStringList([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = normalizeStringList("  ")
	assert.Error(t, err)

	_, err = normalizeStringList([]any{"a", ""})
	assert.Error(t, err)

	_, err = normalizeStringList(map[string]any{})
	assert.Error(t, err)
}
