// Package config provides functionality for loading and layering build
// declarations: the plugin list, entry inputs, path aliases, dev-server
// settings and PWA block of a web application. It produces a raw
// [Declaration]; validation and normalization happen in the resolver.
//
// # Basic Usage
//
// The main entry point is [Load], which reads the declaration for a
// project root:
//
//	decl, err := config.Load("/srv/happy-order", config.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Layering
//
// Sources are applied in order, later ones overriding earlier ones:
//
//	buildcfg.yaml → buildcfg.local.yaml → BUILDCFG_* environment
//
// Scalars are overridden, option maps are merged by key, lists are
// replaced wholesale and aliases are merged by key.
//
// # Flexible Shapes
//
// Plugins can be written as a bare name or with options:
//
//	plugins:
//	  - name: laravel
//	    options:
//	      input: [resources/css/app.css, resources/js/app.js]
//	      refresh: true
//	  - vue
//
// Aliases can be a mapping or a list. Duplicate keys are preserved so
// the resolver can report them:
//
//	aliases:
//	  "@": resources/js
//	  "~": resources
//
// Ports may be integers or digit strings:
//
//	server:
//	  port: 3000     # integer
//	  port: "3000"   # string
//
// # Programmatic Declarations
//
// [Builder] assembles the same structure in code:
//
//	decl := config.NewBuilder().
//	    WithInput("resources/js/app.js").
//	    WithPlugin("vue", nil).
//	    WithAlias("@", "resources/js").
//	    WithServer("0.0.0.0", 3000).
//	    Build()
package config
