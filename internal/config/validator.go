// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, ensuring the binary never
// runs with partial, malformed, or missing configuration.
//
// Beyond the built-in `required` and `hostname_port` rules we register one
// custom rule, `two_label_host`: the subdomain classifier assumes the
// canonical host is exactly `name.tld`, so a three-label canonical host
// (or a host with a port) must be rejected before the server starts.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("two_label_host", func(fl validator.FieldLevel) bool {
		host := fl.Field().String()
		if strings.ContainsAny(host, ":/ ") {
			return false
		}
		parts := strings.Split(host, ".")
		return len(parts) == 2 && parts[0] != "" && parts[1] != ""
	})
	return val
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}

// Validate exposes the shared validator for ad-hoc field checks, e.g.
// email validation at the HTTP boundary.
func Validate() *validator.Validate {
	return v
}
