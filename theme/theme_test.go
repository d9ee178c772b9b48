package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/termdesk/terminal"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullTheme(t *testing.T) {
	path := writeTheme(t, `
name = "test"
window_bg = "#102030"
border_focused = "#ff0000"
border_unfocused = "#00ff00"
`)
	th, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "test" {
		t.Errorf("Expected name test, got %s", th.Name)
	}
	if th.WindowBg != (terminal.RGB{R: 0x10, G: 0x20, B: 0x30}) {
		t.Errorf("Expected window_bg 102030, got %+v", th.WindowBg)
	}
	if th.BorderUnfocused != (terminal.RGB{G: 255}) {
		t.Errorf("Expected explicit unfocused border kept, got %+v", th.BorderUnfocused)
	}
}

func TestLoadDerivesUnfocused(t *testing.T) {
	path := writeTheme(t, `
border_focused = "#8080ff"
`)
	th, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if th.BorderUnfocused == th.BorderFocused {
		t.Error("Expected derived unfocused border to differ from focused")
	}
	// Dimming toward a dark background must not brighten
	f := int(th.BorderFocused.R) + int(th.BorderFocused.G) + int(th.BorderFocused.B)
	u := int(th.BorderUnfocused.R) + int(th.BorderUnfocused.G) + int(th.BorderUnfocused.B)
	if u >= f {
		t.Errorf("Expected dimmer unfocused border, focused sum %d, unfocused sum %d", f, u)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeTheme(t, `
bogus_key = "#ffffff"
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	path := writeTheme(t, `
window_bg = "notacolor"
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed color")
	}
}

func TestDefaultChromeStyles(t *testing.T) {
	th := Default()
	f := th.ChromeFocused()
	b := th.ChromeBlurred()
	if f.Border == b.Border {
		t.Error("Expected focus state to change border color")
	}
	if f == b {
		t.Error("Expected distinct chrome styles")
	}
}
