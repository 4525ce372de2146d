package cli

import (
	"fmt"
	"path/filepath"

	"github.com/nauticalab/buildcfg/internal/templates"
)

// GenerateOptions holds configuration for the generate command
type GenerateOptions struct {
	ProjectOptions
	OutputDir string
	DryRun    bool
}

// RunGenerate renders the Vite config and web manifest for the project.
func RunGenerate(opts GenerateOptions) error {
	w := opts.out()

	outputDir := opts.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(opts.Root, outputDir)
	}

	if opts.Verbose {
		fmt.Fprintf(w, "Output directory: %s\n", outputDir)
		fmt.Fprintf(w, "Dry run mode: %t\n", opts.DryRun)
	}

	cfg, err := LoadConfiguration(opts.ProjectOptions)
	if err != nil {
		printValidationError(opts.ProjectOptions, err)
		return err
	}

	fmt.Fprintf(w, "✅ Successfully resolved build configuration for %s\n", cfg.Root())
	if opts.Verbose {
		printConfigSummary(w, cfg)
	}

	if opts.DryRun {
		fmt.Fprintf(w, "🔍 Dry run - would generate files to: %s\n", outputDir)
		return nil
	}

	written, err := templates.NewRenderer(outputDir).RenderAll(cfg)
	if err != nil {
		return fmt.Errorf("failed to render templates: %w", err)
	}
	for _, path := range written {
		fmt.Fprintf(w, "  wrote %s\n", path)
	}
	fmt.Fprintf(w, "🎉 Successfully generated %d files\n", len(written))
	return nil
}
