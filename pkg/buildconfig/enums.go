package buildconfig

import "fmt"

// Strategy is a service-worker runtime caching strategy.
type Strategy string

const (
	CacheFirst           Strategy = "CacheFirst"
	NetworkFirst         Strategy = "NetworkFirst"
	StaleWhileRevalidate Strategy = "StaleWhileRevalidate"
	NetworkOnly          Strategy = "NetworkOnly"
	CacheOnly            Strategy = "CacheOnly"
)

// Strategies lists every recognized strategy in canonical order.
var Strategies = []Strategy{CacheFirst, NetworkFirst, StaleWhileRevalidate, NetworkOnly, CacheOnly}

// ParseStrategy maps a declared handler name to a Strategy.
// Matching is case-sensitive, as the service-worker generator expects.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown caching strategy %q", s)
}

// DisplayMode is the manifest display mode.
type DisplayMode string

const (
	DisplayStandalone DisplayMode = "standalone"
	DisplayFullscreen DisplayMode = "fullscreen"
	DisplayMinimalUI  DisplayMode = "minimal-ui"
	DisplayBrowser    DisplayMode = "browser"
)

// DisplayModes lists every recognized display mode.
var DisplayModes = []DisplayMode{DisplayStandalone, DisplayFullscreen, DisplayMinimalUI, DisplayBrowser}

// ParseDisplayMode maps a declared display string to a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range DisplayModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown display mode %q", s)
}

// RegisterType controls how the generated service worker updates.
type RegisterType string

const (
	RegisterPrompt     RegisterType = "prompt"
	RegisterAutoUpdate RegisterType = "autoUpdate"
)

// ParseRegisterType maps a declared register type to a RegisterType.
func ParseRegisterType(s string) (RegisterType, error) {
	switch RegisterType(s) {
	case RegisterPrompt, RegisterAutoUpdate:
		return RegisterType(s), nil
	}
	return "", fmt.Errorf("unknown register type %q", s)
}
