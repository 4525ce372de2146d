package cli

import (
	"errors"
	"fmt"

	"github.com/nauticalab/buildcfg/internal/validation"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// suggestions are printed once per violation kind found
var suggestions = map[validation.Kind]string{
	validation.MissingField:      "Fill in the required fields listed above",
	validation.InvalidPort:       fmt.Sprintf("Use ports between %d and %d", validation.PortMin, validation.PortMax),
	validation.DuplicateAliasKey: "Declare each alias key once; overlay files override aliases by key",
	validation.UnknownStrategy:   fmt.Sprintf("Valid caching strategies: %v", buildconfig.Strategies),
	validation.InvalidExpiration: "Expiration limits must be whole numbers of zero or more",
	validation.InvalidPath:       "Alias targets must be existing directories, relative to the project root",
	validation.InvalidPattern:    "urlPattern must be a valid regular expression",
}

// RunValidate resolves the project declaration and reports every problem.
func RunValidate(opts ProjectOptions) error {
	w := opts.out()
	fmt.Fprintf(w, "🔍 Validating build declaration in %s...\n", opts.Root)

	cfg, err := LoadConfiguration(opts)
	if err != nil {
		printValidationError(opts, err)
		return err
	}

	fmt.Fprintln(w, "✅ Build declaration is valid!")
	if opts.Verbose {
		printConfigSummary(w, cfg)
	}
	return nil
}

// printValidationError prints violations in a user-friendly format
func printValidationError(opts ProjectOptions, err error) {
	w := opts.out()

	var cfgErr *validation.ConfigError
	if !errors.As(err, &cfgErr) {
		fmt.Fprintf(w, "❌ Validation failed: %v\n", err)
		return
	}

	for _, v := range cfgErr.Violations {
		fmt.Fprintf(w, "❌ %s: %s\n", v.Path, v.Message)
		if opts.Verbose {
			fmt.Fprintf(w, "   Kind: %s\n", v.Kind)
		}
	}
	fmt.Fprintf(w, "❌ Validation failed with %d errors\n", len(cfgErr.Violations))

	fmt.Fprintln(w, "\n💡 Suggestions:")
	for _, kind := range cfgErr.Kinds() {
		if hint, ok := suggestions[kind]; ok {
			fmt.Fprintf(w, "   • %s\n", hint)
		}
	}
}
