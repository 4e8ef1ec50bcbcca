// Package config holds the process-wide defaults that command rendering and
// execution consult.
package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const ConfigurationName = "config.yaml"

// Configuration is initialized once per process and read by every render.
// Renders read it live, never through a cached snapshot, so changes made
// between renders take effect.
type Configuration struct {
	// DefaultEnv is an ordered list of KEY=value entries forming the base of
	// every command's environment. Order matters: a per-command override
	// keeps the position of the key it replaces.
	DefaultEnv []string `json:"default_env"`

	// DefaultUmask applies to commands that don't set their own. Empty
	// disables the umask wrapper entirely.
	DefaultUmask string `json:"default_umask" validate:"omitempty,number"`

	// DefaultVerbosity is the threshold for lifecycle logging.
	DefaultVerbosity string `json:"default_verbosity" validate:"omitempty,oneof=debug info warn error fatal"`

	// RaiseOnNonZeroExit makes recording a non-zero exit status an error.
	RaiseOnNonZeroExit bool `json:"raise_on_non_zero_exit"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Reset restores the built-in defaults in place.
func (c *Configuration) Reset() {
	*c = *Default()
}

// Default returns a fresh copy of the built-in defaults.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
