package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DeclarationFiles are the file names searched, in order, at the project
// root when no explicit file is given. JSON is read by the YAML decoder.
var DeclarationFiles = []string{"buildcfg.yaml", "buildcfg.yml", "buildcfg.json"}

// LocalOverlayFile is merged over the discovered declaration when present.
// It is meant for per-machine settings and is usually not committed.
const LocalOverlayFile = "buildcfg.local.yaml"

// LoadOptions controls how Load assembles a declaration.
type LoadOptions struct {
	// Files are merged in order, later files overriding earlier ones.
	// When empty, the first of DeclarationFiles found at the root is used,
	// followed by LocalOverlayFile if it exists.
	Files []string
	// Env overrides are applied last.
	Env EnvOverrides
}

// Load reads the declaration for the project at root:
// declaration file → local overlay → environment overrides.
// Relative entries in opts.Files are resolved against root.
func Load(root string, opts LoadOptions) (*Declaration, error) {
	files := opts.Files
	if len(files) == 0 {
		discovered, err := discoverFiles(root)
		if err != nil {
			return nil, err
		}
		files = discovered
	}

	var merged *Declaration
	for _, file := range files {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		decl, err := LoadDeclarationFile(path)
		if err != nil {
			return nil, err
		}

		if merged == nil {
			merged = decl
			continue
		}
		if merged, err = MergeDeclarations(merged, decl); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	opts.Env.Apply(merged)
	return merged, nil
}

// discoverFiles returns the main declaration file and, if present, the
// local overlay.
func discoverFiles(root string) ([]string, error) {
	var files []string
	for _, name := range DeclarationFiles {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			files = append(files, name)
			break
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no declaration file found in %s (looked for %v)", root, DeclarationFiles)
	}

	if _, err := os.Stat(filepath.Join(root, LocalOverlayFile)); err == nil {
		files = append(files, LocalOverlayFile)
	}
	return files, nil
}

// LoadDeclarationFile reads and parses a single declaration file.
func LoadDeclarationFile(path string) (*Declaration, error) {
	// Check if the declaration file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("declaration file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	decl, err := ParseDeclaration(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", path, err)
	}
	return decl, nil
}

// ParseDeclaration decodes a YAML or JSON document. Unknown top-level
// keys are rejected so that typos do not silently drop settings. An
// empty document yields an empty declaration.
func ParseDeclaration(data []byte) (*Declaration, error) {
	var decl Declaration

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&decl); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &decl, nil
}

// MergeDeclarations returns base with overlay merged over it:
//
// Override fields (overlay replaces base when set):
//   - input, plugins, server.*, pwa.* scalars and lists
//
// Keyed fields (overlay entries replace base entries with the same key):
//   - aliases
//
// Neither argument is modified.
func MergeDeclarations(base, overlay *Declaration) (*Declaration, error) {
	merged, err := cloneDeclaration(base)
	if err != nil {
		return nil, err
	}
	src, err := cloneDeclaration(overlay)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(merged, src, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging declarations: %w", err)
	}

	merged.Aliases = mergeAliases(base.Aliases, overlay.Aliases)
	return merged, nil
}

// cloneDeclaration deep-copies decl through a YAML round trip so that
// merging never writes into maps or pointers shared with the inputs.
func cloneDeclaration(decl *Declaration) (*Declaration, error) {
	data, err := yaml.Marshal(decl)
	if err != nil {
		return nil, fmt.Errorf("failed to copy declaration: %w", err)
	}
	var out Declaration
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy declaration: %w", err)
	}
	return &out, nil
}

// mergeAliases combines base and overlay aliases.
// Overlay aliases with the same key override base aliases.
func mergeAliases(base, overlay AliasList) AliasList {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	overridden := make(map[string]bool, len(overlay))
	for _, entry := range overlay {
		overridden[entry.Key] = true
	}

	var result AliasList

	// Add base aliases, but skip if overlay has the same key
	for _, entry := range base {
		if !overridden[entry.Key] {
			result = append(result, entry)
		}
	}

	// Add all overlay aliases
	result = append(result, overlay...)

	return result
}
