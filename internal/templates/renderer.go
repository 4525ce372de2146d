package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/nauticalab/buildcfg/pkg/buildconfig"
)

// Embed all templates at compile time
//
//go:embed *.tmpl
var templates embed.FS

// Output names, each rendered from "<name>.tmpl".
const (
	ViteConfig  = "vite.config.mjs"
	WebManifest = "manifest.webmanifest"
)

// generatedNames maps template names to the files written by RenderAll.
var generatedNames = map[string]string{
	ViteConfig:  "vite.config.generated.mjs",
	WebManifest: WebManifest,
}

// pluginModules maps known plugin kinds to their import identifier and module.
var pluginModules = map[string]pluginImport{
	buildconfig.PluginLaravel: {Ident: "laravel", Module: "laravel-vite-plugin"},
	buildconfig.PluginVue:     {Ident: "vue", Module: "@vitejs/plugin-vue"},
}

var identRe = regexp.MustCompile(`[^A-Za-z0-9_$]+`)

type pluginImport struct {
	Ident  string
	Module string
}

type pluginCall struct {
	Ident   string
	Options map[string]any
}

// templateData is the view of a BuildConfiguration handed to templates.
type templateData struct {
	Imports  []pluginImport
	Plugins  []pluginCall
	Inputs   []string
	Aliases  map[string]string
	Server   map[string]any
	PWA      *buildconfig.PwaManifestSpec
	Manifest *webManifest
}

// webManifest is the W3C web app manifest document.
type webManifest struct {
	Name            string                  `json:"name"`
	ShortName       string                  `json:"short_name,omitempty"`
	Description     string                  `json:"description,omitempty"`
	ThemeColor      string                  `json:"theme_color,omitempty"`
	BackgroundColor string                  `json:"background_color,omitempty"`
	Display         buildconfig.DisplayMode `json:"display"`
	StartURL        string                  `json:"start_url"`
	Scope           string                  `json:"scope,omitempty"`
	Icons           []buildconfig.IconSpec  `json:"icons,omitempty"`
}

// Renderer handles template operations
type Renderer struct {
	outputDir string
}

// NewRenderer creates a new template renderer
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{
		outputDir: outputDir,
	}
}

// RenderAll writes every applicable output for cfg and returns the paths
// written. The web manifest is only written when a PWA block exists.
func (r *Renderer) RenderAll(cfg *buildconfig.BuildConfiguration) ([]string, error) {
	names := []string{ViteConfig}
	if _, ok := cfg.PWA(); ok {
		names = append(names, WebManifest)
	}

	var written []string
	for _, name := range names {
		path, err := r.RenderTemplate(name, cfg)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// RenderTemplate renders one template into the output directory and
// returns the written path.
func (r *Renderer) RenderTemplate(templateName string, cfg *buildconfig.BuildConfiguration) (string, error) {
	fileName, ok := generatedNames[templateName]
	if !ok {
		return "", fmt.Errorf("unknown template %s", templateName)
	}
	if _, ok := cfg.PWA(); templateName == WebManifest && !ok {
		return "", fmt.Errorf("configuration has no PWA manifest")
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", r.outputDir, err)
	}

	// A failed render leaves no file behind.
	var buf bytes.Buffer
	if err := Render(&buf, templateName, cfg); err != nil {
		return "", err
	}

	outputPath := filepath.Join(r.outputDir, fileName)
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// Render executes the named template for cfg into w.
func Render(w io.Writer, templateName string, cfg *buildconfig.BuildConfiguration) error {
	// Read from embedded filesystem
	templateContent, err := templates.ReadFile(templateName + ".tmpl")
	if err != nil {
		return fmt.Errorf("unknown template %s: %w", templateName, err)
	}

	// Parse template
	tmpl, err := template.New(templateName).Funcs(funcMap).Parse(string(templateContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	data := newTemplateData(cfg)
	if templateName == WebManifest && data.Manifest == nil {
		return fmt.Errorf("configuration has no PWA manifest")
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", templateName, err)
	}
	return nil
}

var funcMap = template.FuncMap{
	"json":         toJSON,
	"jsonIndent":   toJSONIndent,
	"cacheOptions": cacheOptions,
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toJSONIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// cacheOptions renders the options object of a runtime caching rule,
// leaving out unset limits.
func cacheOptions(rule buildconfig.CacheRule) map[string]any {
	opts := map[string]any{}
	if rule.CacheName != "" {
		opts["cacheName"] = rule.CacheName
	}
	expiration := map[string]any{}
	if rule.Expiration.MaxEntries > 0 {
		expiration["maxEntries"] = rule.Expiration.MaxEntries
	}
	if rule.Expiration.MaxAgeSeconds > 0 {
		expiration["maxAgeSeconds"] = rule.Expiration.MaxAgeSeconds
	}
	if len(expiration) > 0 {
		opts["expiration"] = expiration
	}
	return opts
}

func newTemplateData(cfg *buildconfig.BuildConfiguration) templateData {
	data := templateData{
		Inputs:  cfg.Inputs(),
		Aliases: cfg.AliasMap(),
	}

	seen := make(map[string]bool)
	for _, plugin := range cfg.Plugins() {
		imp, ok := pluginModules[plugin.Name]
		if !ok {
			imp = pluginImport{Ident: pluginIdent(plugin.Name), Module: plugin.Name}
		}
		if !seen[imp.Ident] {
			seen[imp.Ident] = true
			data.Imports = append(data.Imports, imp)
		}
		data.Plugins = append(data.Plugins, pluginCall{Ident: imp.Ident, Options: plugin.Options})
	}

	server := cfg.Server()
	data.Server = map[string]any{"host": server.Host, "port": server.Port}
	hmr := map[string]any{}
	if server.HMRHost != "" {
		hmr["host"] = server.HMRHost
	}
	if server.HMRPort != 0 {
		hmr["port"] = server.HMRPort
	}
	if len(hmr) > 0 {
		data.Server["hmr"] = hmr
	}

	if pwa, ok := cfg.PWA(); ok {
		data.PWA = &pwa
		data.Imports = append(data.Imports, pluginImport{Ident: "{ VitePWA }", Module: "vite-plugin-pwa"})
		data.Manifest = &webManifest{
			Name:            pwa.Name,
			ShortName:       pwa.ShortName,
			Description:     pwa.Description,
			ThemeColor:      pwa.ThemeColor,
			BackgroundColor: pwa.BackgroundColor,
			Display:         pwa.Display,
			StartURL:        pwa.StartURL,
			Scope:           pwa.Scope,
			Icons:           pwa.Icons,
		}
	}
	return data
}

// pluginIdent derives a JavaScript identifier from a plugin name, e.g.
// "vite-plugin-inspect" -> "vitePluginInspect".
func pluginIdent(name string) string {
	parts := identRe.Split(name, -1)
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	ident := b.String()
	if ident == "" || (ident[0] >= '0' && ident[0] <= '9') {
		ident = "plugin" + ident
	}
	return ident
}
