// Package plugins decodes plugin option bags into the typed schemas of
// known plugin kinds. Decoding is permissive: keys outside the schema
// are returned as extensions and echoed back unchanged.
package plugins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// Decoded is the result of decoding one option bag.
type Decoded struct {
	// Known is nil for unrecognized plugin kinds.
	Known buildconfig.PluginOptions
	// Extensions holds the keys the schema does not cover.
	Extensions map[string]any
}

// Problem is an option that failed to decode. Key is relative to the
// option bag, e.g. "input[1]".
type Problem struct {
	Key     string
	Message string
}

type decodeFunc func(options map[string]any) (Decoded, []Problem)

var registry = map[string]decodeFunc{
	buildconfig.PluginLaravel: decodeLaravel,
	buildconfig.PluginVue:     decodeVue,
}

// IsKnown reports whether name has a typed option schema.
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// Known returns the names of plugin kinds with a typed schema, sorted.
func Known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode decodes options for the plugin called name.
func Decode(name string, options map[string]any) (Decoded, []Problem) {
	decode, ok := registry[name]
	if !ok {
		return Decoded{Extensions: copyOptions(options)}, nil
	}
	return decode(options)
}

// laravelRaw mirrors the laravel plugin options. Input and Refresh accept
// more than one shape and are normalized after decoding.
type laravelRaw struct {
	Input          any            `mapstructure:"input"`
	Refresh        any            `mapstructure:"refresh"`
	BuildDirectory string         `mapstructure:"buildDirectory"`
	HotFile        string         `mapstructure:"hotFile"`
	Extra          map[string]any `mapstructure:",remain"`
}

func decodeLaravel(options map[string]any) (Decoded, []Problem) {
	var raw laravelRaw
	problems := decodeInto(options, &raw)

	opts := buildconfig.LaravelOptions{
		BuildDirectory: raw.BuildDirectory,
		HotFile:        raw.HotFile,
	}

	if raw.Input != nil {
		input, err := normalizeStringList(raw.Input)
		if err != nil {
			problems = append(problems, Problem{Key: "input", Message: err.Error()})
		}
		opts.Input = input
	}

	switch refresh := raw.Refresh.(type) {
	case nil:
	case bool:
		opts.Refresh = refresh
	default:
		paths, err := normalizeStringList(refresh)
		if err != nil {
			problems = append(problems, Problem{Key: "refresh", Message: "must be a boolean, a path or a list of paths"})
			break
		}
		opts.Refresh = true
		opts.RefreshPaths = paths
	}

	return Decoded{Known: opts, Extensions: nilIfEmpty(raw.Extra)}, problems
}

type vueRaw struct {
	Include      any            `mapstructure:"include"`
	Exclude      any            `mapstructure:"exclude"`
	IsProduction *bool          `mapstructure:"isProduction"`
	Extra        map[string]any `mapstructure:",remain"`
}

func decodeVue(options map[string]any) (Decoded, []Problem) {
	var raw vueRaw
	problems := decodeInto(options, &raw)

	opts := buildconfig.VueOptions{IsProduction: raw.IsProduction}
	if raw.Include != nil {
		include, err := normalizeStringList(raw.Include)
		if err != nil {
			problems = append(problems, Problem{Key: "include", Message: err.Error()})
		}
		opts.Include = include
	}
	if raw.Exclude != nil {
		exclude, err := normalizeStringList(raw.Exclude)
		if err != nil {
			problems = append(problems, Problem{Key: "exclude", Message: err.Error()})
		}
		opts.Exclude = exclude
	}

	return Decoded{Known: opts, Extensions: nilIfEmpty(raw.Extra)}, problems
}

// decodeInto runs mapstructure over options and reports every field it
// could not decode.
func decodeInto(options map[string]any, result any) []Problem {
	if len(options) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    result,
		TagName:   "mapstructure",
		MatchName: exactName,
	})
	if err != nil {
		return []Problem{{Message: fmt.Sprintf("cannot build option decoder: %v", err)}}
	}

	// Decode a copy so the echoed option bag never aliases decoded values.
	if err := decoder.Decode(copyOptions(options)); err != nil {
		return decodeProblems(err)
	}
	return nil
}

// exactName matches option keys case-sensitively, as JavaScript does.
func exactName(mapKey, fieldName string) bool { return mapKey == fieldName }

// decodeProblems splits a mapstructure error into one problem per field.
func decodeProblems(err error) []Problem {
	merr, ok := err.(*mapstructure.Error)
	if !ok {
		return []Problem{{Message: err.Error()}}
	}
	problems := make([]Problem, 0, len(merr.Errors))
	for _, msg := range merr.Errors {
		// mapstructure messages start with the quoted field name: 'hotFile' expected type ...
		key := ""
		if strings.HasPrefix(msg, "'") {
			if end := strings.Index(msg[1:], "'"); end >= 0 {
				key = msg[1 : end+1]
			}
		}
		problems = append(problems, Problem{Key: key, Message: msg})
	}
	return problems
}

// normalizeStringList converts a flexible option into a string slice.
// Handles both single string and string array formats from YAML.
func normalizeStringList(field any) ([]string, error) {
	switch v := field.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("cannot be empty string")
		}
		return []string{v}, nil

	case []any:
		result := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry at index %d is not a string", i)
			}
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("entry at index %d cannot be empty", i)
			}
			result = append(result, s)
		}
		return result, nil

	case []string:
		for i, s := range v {
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("entry at index %d cannot be empty", i)
			}
		}
		return append([]string(nil), v...), nil

	default:
		return nil, fmt.Errorf("must be string or array of strings, got %T", field)
	}
}

func copyOptions(options map[string]any) map[string]any {
	if options == nil {
		return nil
	}
	out := make(map[string]any, len(options))
	for k, v := range options {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyOptions(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

func nilIfEmpty(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
