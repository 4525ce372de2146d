package buildconfig

// Plugin kinds with a known option schema.
const (
	PluginLaravel = "laravel"
	PluginVue     = "vue"
)

// PluginOptions is the typed option schema of a recognized plugin kind.
type PluginOptions interface {
	// Kind returns the plugin name the schema belongs to.
	Kind() string
	clone() PluginOptions
}

// LaravelOptions are the options of the Laravel framework integration.
type LaravelOptions struct {
	// Input lists the entry points handed to the bundler.
	Input []string
	// Refresh enables full page reload on changes. RefreshPaths, when
	// set, limits the watched paths.
	Refresh      bool
	RefreshPaths []string
	// BuildDirectory is the public sub-directory for build output.
	BuildDirectory string
	// HotFile is the path of the file advertising the running dev server.
	HotFile string
}

func (LaravelOptions) Kind() string { return PluginLaravel }

func (o LaravelOptions) clone() PluginOptions {
	o.Input = cloneSlice(o.Input)
	o.RefreshPaths = cloneSlice(o.RefreshPaths)
	return o
}

// VueOptions are the options of the Vue single-file-component plugin.
type VueOptions struct {
	Include      []string
	Exclude      []string
	IsProduction *bool
}

func (VueOptions) Kind() string { return PluginVue }

func (o VueOptions) clone() PluginOptions {
	o.Include = cloneSlice(o.Include)
	o.Exclude = cloneSlice(o.Exclude)
	if o.IsProduction != nil {
		v := *o.IsProduction
		o.IsProduction = &v
	}
	return o
}
