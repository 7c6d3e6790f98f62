package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
color = "off"
max_diagnostics = 5
format = "yaml"
jobs = 3
log_level = "debug"
cache_dir = "cache"
last_roll = "/var/lib/dndml/lastroll.mp"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{
		Path:           path,
		Color:          "off",
		MaxDiagnostics: 5,
		Format:         "yaml",
		Jobs:           3,
		LogLevel:       "debug",
		CacheDir:       filepath.Join(dir, "cache"),
		LastRoll:       "/var/lib/dndml/lastroll.mp",
	}
	if cfg != want {
		t.Errorf("Load() =\n%+v\nwant\n%+v", cfg, want)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "jobs = 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Jobs != 2 || cfg.Color != def.Color || cfg.Format != def.Format || cfg.MaxDiagnostics != def.MaxDiagnostics {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "color = ", "failed to parse TOML"},
		{"unknown key", "colour = \"on\"\n", "unknown keys: colour"},
		{"bad color", "color = \"sometimes\"\n", "color must be one of"},
		{"bad format", "format = \"xml\"\n", "format must be one of"},
		{"bad level", "log_level = \"loud\"\n", "unknown log_level"},
		{"negative jobs", "jobs = -1\n", "jobs must not be negative"},
		{"negative limit", "max_diagnostics = -1\n", "max_diagnostics must not be negative"},
		{"wrong type", "jobs = \"many\"\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "format = \"json\"\n")
	nested := filepath.Join(root, "party", "heroes")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Format != "json" || cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Discover() = %+v", cfg)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	// assumes no dndml.toml above the temp dir
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Discover() = %+v, want defaults", cfg)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
