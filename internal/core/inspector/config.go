package inspector

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls how far and how much of a graph the inspector walks.
type Config struct {
	// MaxDepth bounds the nesting depth of the produced tree. Zero means unbounded.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`
	// IncludeHidden also lists fields tagged hidden.
	IncludeHidden bool `json:"include_hidden" yaml:"include_hidden"`
	// ExpandReferences walks into game objects and resources instead of
	// printing a one-line summary of them.
	ExpandReferences bool `json:"expand_references" yaml:"expand_references"`
	// Workers bounds the goroutines used by InspectAll.
	Workers  int    `json:"workers" yaml:"workers"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth: 8,
		Workers:  4,
		LogLevel: "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// LoadJSON loads config from a JSON reader. Missing keys keep their defaults.
func LoadJSON(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads config from a YAML reader. Missing keys keep their defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode YAML config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", path)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}
