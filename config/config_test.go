package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termdesk.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
fps = 60
diff_strategy = "cell"
mouse_enabled = false

[bell]
enabled = false
audio = false

[bindings]
"ctrl+x" = "quit"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 60 {
		t.Errorf("Expected fps 60, got %d", cfg.FPS)
	}
	if cfg.DiffStrategy != "cell" {
		t.Errorf("Expected strategy cell, got %s", cfg.DiffStrategy)
	}
	if cfg.MouseEnabled {
		t.Error("Expected mouse disabled")
	}
	if cfg.Bell.Enabled {
		t.Error("Expected bell disabled")
	}
	if cfg.Bindings["ctrl+x"] != "quit" {
		t.Errorf("Expected binding preserved, got %v", cfg.Bindings)
	}
	// Untouched fields keep defaults
	if cfg.ColorMode != "auto" {
		t.Errorf("Expected default color_mode, got %s", cfg.ColorMode)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	// Config carries the bindings map, so compare deeply
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `frames_per_second = 60`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"fps too high", "fps = 500"},
		{"fps zero", "fps = 0"},
		{"bad color mode", `color_mode = "16"`},
		{"bad strategy", `diff_strategy = "psychic"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
