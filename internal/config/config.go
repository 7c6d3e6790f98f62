// Package config loads dndml.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the file Discover looks for.
const FileName = "dndml.toml"

var (
	ColorModes = []string{"auto", "on", "off"}
	Formats    = []string{"pretty", "json", "tree", "yaml", "dump"}
	LogLevels  = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}
)

// Config holds the user defaults. CLI flags override every field.
type Config struct {
	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`

	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	LogLevel       string `toml:"log_level"`
	// CacheDir and LastRoll are resolved against the config file's directory.
	CacheDir string `toml:"cache_dir"`
	LastRoll string `toml:"last_roll"`
}

func Default() Config {
	return Config{
		Color:          "auto",
		MaxDiagnostics: 100,
		Format:         "pretty",
		LogLevel:       "warn",
	}
}

// Find walks up from startDir looking for dndml.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load reads path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	cfg.Path = path
	base := filepath.Dir(path)
	cfg.CacheDir = resolve(base, cfg.CacheDir)
	cfg.LastRoll = resolve(base, cfg.LastRoll)
	return cfg, nil
}

// Discover loads the nearest dndml.toml above startDir, or the defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("color must be one of %s, got %q", strings.Join(ColorModes, "|"), c.Color)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(Formats, "|"), c.Format)
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("max_diagnostics must not be negative, got %d", c.MaxDiagnostics)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
