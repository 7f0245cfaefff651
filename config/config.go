// Package config holds driver selection, api version and logging settings, read from a
// YAML file and overridden by the loader environment variables.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvNullDriver      = "ZE_ENABLE_NULL_DRIVER"
	EnvTracing         = "ZE_ENABLE_TRACING_LAYER"
	EnvLogging         = "ZEL_ENABLE_LOADER_LOGGING"
	EnvLoggingLevel    = "ZEL_LOADER_LOGGING_LEVEL"
	EnvLogFile         = "ZEL_LOADER_LOG_FILE"
	EnvDriverLibrary   = "ZE_DRIVER_LIBRARY"
	EnvAPIVersion      = "ZE_API_VERSION"
	DefaultLibraryName = "ze_loader"
	DefaultLibraryVer  = "1"
	DefaultVerbosity   = "off"
)

type Config struct {
	Driver struct {
		Library string `yaml:"library"`
		Static  bool   `yaml:"static"`
		// Null selects the in-process null driver. The key is null_driver: a bare null key
		// is the YAML null value, not a string.
		Null    bool   `yaml:"null_driver"`
		Object  string `yaml:"object"`
		Package string `yaml:"package"`
		// Name of a driver registered in process, takes precedence over Library.
		Name string `yaml:"name"`
	} `yaml:"driver"`
	API struct {
		Version string `yaml:"version"`
		Lenient bool   `yaml:"lenient"`
	} `yaml:"api"`
	Logger struct {
		Verbosity string `yaml:"verbosity"`
		File      string `yaml:"file"`
	} `yaml:"logger"`
	// Tracing logs every dispatched call at debug level, see ddi.LogTracer.
	Tracing bool `yaml:"tracing"`
}

// Default configuration: silent logging, current api version, library picked by name convention.
func Default() *Config {
	c := new(Config)
	c.Logger.Verbosity = DefaultVerbosity
	return c
}

// LoadConfig reads a YAML file over the defaults, then applies the environment.
func LoadConfig(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "read config %s", path)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, errors.WithMessagef(err, "parse config %s", path)
	}
	c.ApplyEnv()
	return c, nil
}

// FromEnv is Default with the environment applied.
func FromEnv() *Config {
	c := Default()
	c.ApplyEnv()
	return c
}

// ApplyEnv overrides fields whose variable is set.
func (c *Config) ApplyEnv() {
	if v, ok := lookup(EnvNullDriver); ok {
		c.Driver.Null = Bool(v)
	}
	if v, ok := lookup(EnvTracing); ok {
		c.Tracing = Bool(v)
	}
	if v, ok := lookup(EnvDriverLibrary); ok && v != "" {
		c.Driver.Library = v
	}
	if v, ok := lookup(EnvAPIVersion); ok && v != "" {
		c.API.Version = v
	}
	if v, ok := lookup(EnvLogging); ok {
		if Bool(v) {
			c.Logger.Verbosity = "warn"
			if lv, ok := lookup(EnvLoggingLevel); ok && lv != "" {
				c.Logger.Verbosity = lv
			}
		} else {
			c.Logger.Verbosity = DefaultVerbosity
		}
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Logger.File = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return strings.TrimSpace(v), ok
}

// Bool follows the loader rule: only "1" is true.
func Bool(v string) bool {
	return v == "1"
}
