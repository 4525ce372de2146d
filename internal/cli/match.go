package cli

import (
	"context"
	"fmt"

	"github.com/nauticalab/buildcfg/internal/client"
	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// MatchOptions holds configuration for the match command
type MatchOptions struct {
	ProjectOptions
	URL string
	// Server queries a running inspection server instead of resolving locally
	Server string
}

// RunMatch prints the runtime caching rule that would handle opts.URL.
func RunMatch(ctx context.Context, opts MatchOptions) error {
	w := opts.out()

	var (
		rule    *buildconfig.CacheRule
		matched bool
	)

	if opts.Server != "" {
		resp, err := client.New(client.Config{BaseURL: opts.Server}).MatchCacheRule(ctx, opts.URL)
		if err != nil {
			printValidationError(opts.ProjectOptions, err)
			return err
		}
		rule, matched = resp.Rule, resp.Matched
	} else {
		cfg, err := LoadConfiguration(opts.ProjectOptions)
		if err != nil {
			printValidationError(opts.ProjectOptions, err)
			return err
		}
		pwa, ok := cfg.PWA()
		if !ok {
			return fmt.Errorf("configuration has no PWA manifest")
		}
		if r, ok := pwa.Caching.Match(opts.URL); ok {
			rule, matched = &r, true
		}
	}

	if !matched {
		fmt.Fprintf(w, "⚠️  No runtime caching rule matches %s\n", opts.URL)
		return nil
	}

	fmt.Fprintf(w, "✅ %s\n", opts.URL)
	fmt.Fprintf(w, "  Pattern: %s\n", rule.Pattern)
	fmt.Fprintf(w, "  Strategy: %s\n", rule.Strategy)
	if rule.CacheName != "" {
		fmt.Fprintf(w, "  Cache: %s\n", rule.CacheName)
	}
	if rule.Expiration.MaxEntries > 0 || rule.Expiration.MaxAgeSeconds > 0 {
		fmt.Fprintf(w, "  Expiration: maxEntries=%d maxAgeSeconds=%d\n",
			rule.Expiration.MaxEntries, rule.Expiration.MaxAgeSeconds)
	}
	return nil
}
