package check

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/gnolang/lessp/internal"
	"github.com/gnolang/lessp/parser"
	"gopkg.in/yaml.v3"
)

// Version is the version of the tool. Release builds override it with
// -ldflags "-X github.com/gnolang/lessp/check.Version=...".
var Version = "0.3.0"

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".lessp.yaml"

// Config is the content of a configuration file.
type Config struct {
	Name string `yaml:"name"`
	// Version constrains the tool versions the file works with, e.g. ">= 0.2".
	Version     string   `yaml:"version,omitempty"`
	MaxDepth    int      `yaml:"max_depth"`
	Detach      bool     `yaml:"detach"`
	Extensions  []string `yaml:"extensions"`
	IgnorePaths []string `yaml:"ignore_paths,omitempty"`
	CacheDir    string   `yaml:"cache_dir,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:       "lessp",
		MaxDepth:   parser.DefaultMaxDepth,
		Extensions: append([]string(nil), internal.DefaultExtensions...),
	}
}

// LoadConfig reads the configuration at path. Fields absent from the file
// keep their default value, and a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values of the configuration.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Version != "" {
		if _, err := semver.NewConstraint(c.Version); err != nil {
			return fmt.Errorf("invalid version constraint %q: %w", c.Version, err)
		}
	}
	return nil
}

// CheckVersion reports an error when version does not satisfy the version
// constraint of the configuration.
func (c Config) CheckVersion(version string) error {
	if c.Version == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Version)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", c.Version, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("configuration %q requires version %s, running %s", c.Name, c.Version, v)
	}
	return nil
}

// ParserOptions returns the parser options the configuration selects.
func (c Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(c.MaxDepth),
		parser.WithDetach(c.Detach),
	}
}

// WriteConfig writes config to path in YAML.
func WriteConfig(path string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
