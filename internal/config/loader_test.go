package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML(), EmbeddedSource)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  size: 5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Board.Size != 5 {
		t.Errorf("Board.Size = %d, want 5", cfg.Board.Size)
	}
	if cfg.Board.StartingTiles != 2 || cfg.TickRate != 60 {
		t.Errorf("missing keys should keep defaults, got %+v", cfg)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  size: 1\n")
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("size 1 error = %v, want ErrInvalid", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != EmbeddedSource {
		t.Errorf("Source = %q, want embedded default", cfg.Source)
	}

	writeFile(t, filepath.Join(work, "configs", "t2048.yaml"), "board:\n  size: 6\n")
	cfg, _ = Load("")
	if cfg.Board.Size != 6 {
		t.Errorf("local config not used: size = %d", cfg.Board.Size)
	}

	writeFile(t, filepath.Join(home, ".t2048", "config.yaml"), "board:\n  size: 3\n")
	cfg, _ = Load("")
	if cfg.Board.Size != 3 {
		t.Errorf("user config should win over local config: size = %d", cfg.Board.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"largest board", func(c *Config) { c.Board.Size = MaxBoardSize }, true},
		{"board too small", func(c *Config) { c.Board.Size = 1 }, false},
		{"board too large", func(c *Config) { c.Board.Size = MaxBoardSize + 1 }, false},
		{"no starting tiles", func(c *Config) { c.Board.StartingTiles = 0 }, true},
		{"too many starting tiles", func(c *Config) { c.Board.StartingTiles = 17 }, false},
		{"negative animation", func(c *Config) { c.Animation.PopTicks = -1 }, false},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Board.Size = 5

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := parse(data, "roundtrip")
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if got.Board != cfg.Board || got.Animation != cfg.Animation || got.TickRate != cfg.TickRate {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
