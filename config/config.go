// Package config holds the process-wide request layer configuration.
//
// There is no global instance: an application constructs one Config at
// startup, hands it to the client constructor, and replaces it wholesale if
// it ever needs different settings. The client copies the value it is given,
// so a Config is never mutated mid-flight.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/apiclient/transform"
	"github.com/GriffinCanCode/apiclient/transport"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds everything a client instance needs.
type Config struct {
	// RootPath is the URL prefix every call path is joined onto. Must be
	// an absolute URL.
	RootPath string `envconfig:"ROOT_PATH" yaml:"root_path" toml:"root_path"`

	// Headers are merged into every request, beneath caller headers.
	Headers map[string]string `envconfig:"HEADERS" yaml:"headers" toml:"headers"`

	// Timeout bounds each exchange end to end.
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s" yaml:"timeout" toml:"timeout"`

	// Logging configures the client logger.
	Logging LogConfig `envconfig:"LOG" yaml:"logging" toml:"logging"`

	// RequestTransforms and ResponseTransforms apply to every call unless
	// a call-level codec overrides them. A non-empty request list marks
	// outgoing requests as carrying a non-default wire format.
	RequestTransforms  []transform.RequestTransform  `ignored:"true" yaml:"-" toml:"-"`
	ResponseTransforms []transform.ResponseTransform `ignored:"true" yaml:"-" toml:"-"`

	// Hooks observe the request lifecycle.
	Hooks transport.Hooks `ignored:"true" yaml:"-" toml:"-"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"DEV" default:"false" yaml:"development" toml:"development"`
}

// Default returns default configuration. RootPath has no default and must
// be set before use.
func Default() Config {
	return Config{
		Timeout: 30 * time.Second,
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// FromEnv loads configuration from environment variables under the given
// prefix, e.g. PREFIX_ROOT_PATH, PREFIX_TIMEOUT, PREFIX_HEADERS.
func FromEnv(prefix string) (Config, error) {
	cfg := Default()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// FromFile loads configuration from a YAML or TOML file, chosen by
// extension.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("YAML parse error: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, nil
}

// Validate checks that the configuration can back a client.
func (c *Config) Validate() error {
	if c.RootPath == "" {
		return errors.New("root path required")
	}
	u, err := url.Parse(c.RootPath)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("root path %q must be an absolute URL", c.RootPath)
	}
	return nil
}

// URL joins the root path and a call path with exactly one separating
// slash, whichever way either side spells its edges.
func (c *Config) URL(path string) string {
	root := strings.TrimSuffix(c.RootPath, "/")
	if path == "" {
		return root
	}
	return root + "/" + strings.TrimPrefix(path, "/")
}

// Call carries the per-call overrides.
type Call struct {
	Headers map[string]string
	Codec   transform.Codec
}

// Resolved is the merged view one call executes with.
type Resolved struct {
	Header    http.Header
	Requests  []transform.RequestTransform
	Responses []transform.ResponseTransform
}

// Resolve merges call configuration over process defaults. Precedence,
// lowest to highest: process transforms, process headers, caller headers,
// the computed wire-format marker. A call-level codec replaces the
// configured transforms outright and forces the marker affirmative; a
// caller-supplied marker header is always overwritten by the computed one.
func (c *Config) Resolve(call Call) Resolved {
	header := make(http.Header, len(c.Headers)+len(call.Headers)+1)
	for k, v := range c.Headers {
		header.Set(k, v)
	}
	for k, v := range call.Headers {
		header.Set(k, v)
	}

	requests := c.RequestTransforms
	responses := c.ResponseTransforms
	custom := len(requests) > 0
	if call.Codec != nil {
		requests, responses = transform.Stages(call.Codec)
		custom = true
	}

	header.Set(transport.HeaderEncrypted, marker(custom))

	return Resolved{Header: header, Requests: requests, Responses: responses}
}

func marker(custom bool) string {
	if custom {
		return "yes"
	}
	return "no"
}
