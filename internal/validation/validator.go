package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

// Package-level validator shared by every Struct call.
var validate *validator.Validate

// iconSizesRe matches a manifest "sizes" value: "any" or a space-separated
// list of WIDTHxHEIGHT entries. Examples: "192x192", "48x48 96x96", "any".
var iconSizesRe = regexp.MustCompile(`^(?:any|[0-9]+x[0-9]+(?: [0-9]+x[0-9]+)*)$`)

// mimeTypeRe matches a type/subtype MIME string such as "image/png" or
// "image/svg+xml".
var mimeTypeRe = regexp.MustCompile(`(?i)^[a-z]+/[a-z0-9][a-z0-9.+-]*$`)

// namedColors is the subset of CSS named colors accepted by css_color in
// addition to hex, rgb(a) and hsl(a) notations.
var namedColors = map[string]bool{
	"transparent": true, "black": true, "white": true, "red": true, "green": true,
	"blue": true, "yellow": true, "orange": true, "purple": true, "gray": true,
	"grey": true, "silver": true, "maroon": true, "navy": true, "teal": true,
	"olive": true, "lime": true, "aqua": true, "fuchsia": true,
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their YAML key so paths match the declaration file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("css_color", validateCSSColor); err != nil {
		panic(fmt.Errorf("register validator css_color: %w", err))
	}
	if err := validate.RegisterValidation("icon_sizes", validateIconSizes); err != nil {
		panic(fmt.Errorf("register validator icon_sizes: %w", err))
	}
	if err := validate.RegisterValidation("mime_type", validateMIMEType); err != nil {
		panic(fmt.Errorf("register validator mime_type: %w", err))
	}
	if err := validate.RegisterValidation("glob_pattern", validateGlobPattern); err != nil {
		panic(fmt.Errorf("register validator glob_pattern: %w", err))
	}
}

// validateCSSColor implements the "css_color" tag: hex, rgb(a), hsl(a) or
// a basic named color, case-insensitive.
func validateCSSColor(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if namedColors[strings.ToLower(s)] {
		return true
	}
	return validate.Var(s, "iscolor") == nil
}

func validateIconSizes(fl validator.FieldLevel) bool {
	return iconSizesRe.MatchString(fl.Field().String())
}

func validateMIMEType(fl validator.FieldLevel) bool {
	return mimeTypeRe.MatchString(fl.Field().String())
}

// validateGlobPattern implements the "glob_pattern" tag using doublestar
// syntax, which supports "**" and "{a,b}" alternatives.
func validateGlobPattern(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && doublestar.ValidatePattern(s)
}

// Struct runs tag-based validation on s and returns one violation per
// failed field. Paths are rooted at prefix, e.g. "pwa.manifest".
func Struct(prefix string, s any) []Violation {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []Violation{{Kind: InvalidValue, Path: prefix, Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		violations = append(violations, Violation{
			Kind:    kindForTag(fieldError.Tag()),
			Path:    fieldPath(prefix, fieldError.Namespace()),
			Message: formatFieldError(fieldError),
		})
	}
	return violations
}

// fieldPath replaces the root struct name in namespace with prefix.
func fieldPath(prefix, namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return prefix
	}
	if prefix == "" {
		return rest
	}
	return prefix + "." + rest
}

func kindForTag(tag string) Kind {
	switch tag {
	case "required", "required_with", "required_without":
		return MissingField
	default:
		return InvalidValue
	}
}

// formatFieldError creates user-friendly error messages for field validation failures
func formatFieldError(fieldError validator.FieldError) string {
	tag := fieldError.Tag()
	param := fieldError.Param()
	value := fieldError.Value()

	switch tag {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got '%v'", param, value)
	case "css_color":
		return fmt.Sprintf("must be a valid color (e.g., '#2563eb', 'rgb(0,0,0)'), got '%v'", value)
	case "icon_sizes":
		return fmt.Sprintf("must be 'any' or a list of WIDTHxHEIGHT sizes (e.g., '192x192'), got '%v'", value)
	case "mime_type":
		return fmt.Sprintf("must be a MIME type (e.g., 'image/png'), got '%v'", value)
	case "glob_pattern":
		return fmt.Sprintf("must be a valid glob pattern, got '%v'", value)
	case "ip|hostname_rfc1123":
		return fmt.Sprintf("must be a valid hostname or IP address, got '%v'", value)
	case "startswith":
		return fmt.Sprintf("must start with '%s', got '%v'", param, value)
	default:
		return fmt.Sprintf("failed validation '%s', got '%v'", tag, value)
	}
}
