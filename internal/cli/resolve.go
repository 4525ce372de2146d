package cli

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by RunResolve
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ResolveOptions holds configuration for the resolve command
type ResolveOptions struct {
	ProjectOptions
	Format string
}

// RunResolve prints the canonical configuration.
func RunResolve(opts ResolveOptions) error {
	w := opts.out()

	cfg, err := LoadConfiguration(opts.ProjectOptions)
	if err != nil {
		printValidationError(opts.ProjectOptions, err)
		return err
	}

	var data []byte
	switch opts.Format {
	case FormatYAML, "":
		data, err = yaml.Marshal(cfg)
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	default:
		err = fmt.Errorf("unknown output format %q; use %s or %s", opts.Format, FormatYAML, FormatJSON)
	}
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	_, err = w.Write(data)
	return err
}
