// Package config loads the optional listdiff.yaml project configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the project root.
const FileName = "listdiff.yaml"

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
)

// Config represents the optional listdiff.yaml configuration.
type Config struct {
	Format      string `yaml:"format,omitempty"`
	DetectMoves *bool  `yaml:"detect_moves,omitempty"`
	Verbose     bool   `yaml:"verbose,omitempty"`
	// Fixtures is the directory `listdiff check` scans when given no files,
	// relative to the project root.
	Fixtures string `yaml:"fixtures,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	Format      string
	DetectMoves bool
	Verbose     bool
	FixturesDir string
}

// Load reads the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &cfg, nil
}

// LoadOptional reads listdiff.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Resolve applies defaults to cfg. root may be empty outside a Go module.
func Resolve(root string, cfg *Config) (*Resolved, error) {
	r := &Resolved{
		Root:        root,
		Format:      strings.ToLower(strings.TrimSpace(cfg.Format)),
		DetectMoves: true,
		Verbose:     cfg.Verbose,
	}
	if r.Format == "" {
		r.Format = FormatTable
	}
	if err := ValidateFormat(r.Format); err != nil {
		return nil, err
	}
	if cfg.DetectMoves != nil {
		r.DetectMoves = *cfg.DetectMoves
	}
	if root != "" {
		if path, err := modulePath(root); err == nil {
			r.ModulePath = path
		}
		if cfg.Fixtures != "" {
			r.FixturesDir = filepath.Join(root, cfg.Fixtures)
		}
	}
	return r, nil
}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatTable, FormatPlain:
		return nil
	default:
		return errors.Errorf("unknown format %q (use %s or %s)", format, FormatTable, FormatPlain)
	}
}

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", errors.Wrap(err, "failed to read go.mod")
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", errors.New("could not determine module path from go.mod")
	}
	return path, nil
}
