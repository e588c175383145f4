// Package project locates and loads the `isl.toml` manifest: package
// metadata, parse defaults, and resource-limit overrides for a
// specification tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"isl/internal/limits"
)

// ManifestName is the file looked up by Find.
const ManifestName = "isl.toml"

// Manifest is a loaded isl.toml plus its location.
type Manifest struct {
	Path   string // absolute path of the manifest file
	Root   string // directory containing it
	Config Config
}

// Config mirrors the isl.toml structure.
type Config struct {
	Package PackageConfig `toml:"package"`
	Parse   ParseConfig   `toml:"parse"`
	Limits  LimitsConfig  `toml:"limits"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	// LanguageVersion pins the language revision, e.g. "1.2". Empty
	// means latest.
	LanguageVersion string `toml:"language_version"`
}

type ParseConfig struct {
	// Strict disables fuzzy mode for this tree.
	Strict bool `toml:"strict"`
	// MaxDiagnostics bounds the per-file diagnostic bag; 0 keeps the
	// default cap.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// LimitsConfig overrides individual resource ceilings; zero fields keep
// the defaults.
type LimitsConfig struct {
	MaxInputBytes int `toml:"max_input_bytes"`
	MaxStringLen  int `toml:"max_string_len"`
	MaxIdentLen   int `toml:"max_ident_len"`
	MaxTokens     int `toml:"max_tokens"`
	MaxDepth      int `toml:"max_depth"`
}

// Find walks upward from startDir looking for isl.toml. It reports
// false when no manifest exists up to the filesystem root.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

// Discover finds and loads the manifest governing startDir. The second
// return is false when no manifest exists; that is not an error.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// ResolveLimits applies the configured ceilings on top of the defaults.
func (c *Config) ResolveLimits() limits.Limits {
	l := limits.Default()
	if c.Limits.MaxInputBytes > 0 {
		l.MaxInputBytes = c.Limits.MaxInputBytes
	}
	if c.Limits.MaxStringLen > 0 {
		l.MaxStringLen = c.Limits.MaxStringLen
	}
	if c.Limits.MaxIdentLen > 0 {
		l.MaxIdentLen = c.Limits.MaxIdentLen
	}
	if c.Limits.MaxTokens > 0 {
		l.MaxTokens = c.Limits.MaxTokens
	}
	if c.Limits.MaxDepth > 0 {
		l.MaxDepth = c.Limits.MaxDepth
	}
	return l
}
