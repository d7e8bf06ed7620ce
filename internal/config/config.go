// Package config loads CLI default values from a YAML file, so repeated
// invocations against the same service don't need every flag spelled
// out each time.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is
// not given explicitly: $HOME/.rodata/config.yaml.
const DefaultPath = ".rodata/config.yaml"

// Defaults holds the subset of CLI flags a config file may supply a
// fallback for. Flags explicitly passed on the command line always take
// precedence over these.
type Defaults struct {
	// BaseURL, when set, is prepended to any query URL argument that
	// isn't already absolute (no "http://"/"https://" scheme).
	BaseURL string `yaml:"base_url"`
	Format  string `yaml:"format"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	Output  string `yaml:"output"`
	// Delimiter and Newline override the CSV converter's dialect (the
	// sampled source's default is a semicolon and a CRLF).
	Delimiter string `yaml:"delimiter"`
	Newline   string `yaml:"newline"`
	// TimeoutSeconds bounds each HTTP fetch; zero means no timeout,
	// matching http.Client's own zero-value behavior.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// Timeout converts TimeoutSeconds to a time.Duration, 0 meaning none.
func (d Defaults) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(d.TimeoutSeconds * float64(time.Second))
}

// Load reads and parses a YAML defaults file at path. A missing file is
// not an error — it returns a zero Defaults, since the config file is
// always optional.
func Load(path string) (Defaults, error) {
	var d Defaults

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return d, nil
}
