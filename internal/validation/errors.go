// Package validation provides the error taxonomy and the checks used to
// validate build declarations. Violations are collected rather than
// returned one at a time, so a user sees every problem in a single pass.
package validation

import (
	"fmt"
	"strings"
)

// Kind is the category of a validation violation. Kind implements error
// so callers can test an aggregate with errors.Is(err, InvalidPort).
type Kind string

const (
	MissingField      Kind = "MissingField"
	InvalidPort       Kind = "InvalidPort"
	DuplicateAliasKey Kind = "DuplicateAliasKey"
	UnknownStrategy   Kind = "UnknownStrategy"
	InvalidExpiration Kind = "InvalidExpiration"
	InvalidValue      Kind = "InvalidValue"
	InvalidPath       Kind = "InvalidPath"
	InvalidPattern    Kind = "InvalidPattern"
)

func (k Kind) Error() string { return string(k) }

// Violation is a single failed check.
type Violation struct {
	// Kind is the category of the violation
	Kind Kind
	// Path is the offending field path, e.g. "server.port" or "aliases[@]"
	Path string
	// Message is a human-readable description
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Path, v.Message, v.Kind)
}

// ConfigError aggregates every violation found while resolving a
// declaration. It is only returned when at least one violation exists.
type ConfigError struct {
	Violations []Violation
}

func (e *ConfigError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.String())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s",
		strings.Join(lines, "\n  - "))
}

// Has reports whether any violation is of the given kind.
func (e *ConfigError) Has(kind Kind) bool {
	for _, v := range e.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// Kinds returns the distinct violation kinds in first-seen order.
func (e *ConfigError) Kinds() []Kind {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, v := range e.Violations {
		if !seen[v.Kind] {
			seen[v.Kind] = true
			kinds = append(kinds, v.Kind)
		}
	}
	return kinds
}

// Is matches a Kind target against the collected violations.
func (e *ConfigError) Is(target error) bool {
	kind, ok := target.(Kind)
	return ok && e.Has(kind)
}

// Collector accumulates violations during a resolution pass.
type Collector struct {
	violations []Violation
}

// Add records a violation at path.
func (c *Collector) Add(kind Kind, path, format string, args ...any) {
	c.violations = append(c.violations, Violation{
		Kind:    kind,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge records already-built violations.
func (c *Collector) Merge(vs ...Violation) {
	c.violations = append(c.violations, vs...)
}

// Len returns the number of violations recorded so far.
func (c *Collector) Len() int { return len(c.violations) }

// Err returns a *ConfigError holding every recorded violation, or nil.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	out := make([]Violation, len(c.violations))
	copy(out, c.violations)
	return &ConfigError{Violations: out}
}
