package theme

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termdesk/terminal"
)

// fileTheme mirrors the TOML theme file layout. All colors are
// "#rrggbb" strings; the unfocused group may be omitted entirely and
// is then derived from the focused colors.
type fileTheme struct {
	Name string `toml:"name"`

	DesktopBg  string `toml:"desktop_bg"`
	DesktopDot string `toml:"desktop_dot"`

	WindowBg string `toml:"window_bg"`
	WindowFg string `toml:"window_fg"`
	Accent   string `toml:"accent"`
	Muted    string `toml:"muted"`

	BorderFocused   string `toml:"border_focused"`
	BorderUnfocused string `toml:"border_unfocused"`

	TitleFgFocused   string `toml:"title_fg_focused"`
	TitleBgFocused   string `toml:"title_bg_focused"`
	TitleFgUnfocused string `toml:"title_fg_unfocused"`
	TitleBgUnfocused string `toml:"title_bg_unfocused"`

	CloseGlyph string `toml:"close_glyph"`
}

// Load parses a TOML theme file. Missing colors fall back to the
// default theme; missing unfocused colors are derived from their
// focused counterparts by dimming in LCh space.
func Load(path string) (Theme, error) {
	var f fileTheme
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Theme{}, fmt.Errorf("theme %s: unknown key %q", path, undec[0].String())
	}
	return f.resolve()
}

func (f fileTheme) resolve() (Theme, error) {
	t := Default()
	if f.Name != "" {
		t.Name = f.Name
	}

	fields := []struct {
		hex string
		dst *terminal.RGB
	}{
		{f.DesktopBg, &t.DesktopBg},
		{f.DesktopDot, &t.DesktopDot},
		{f.WindowBg, &t.WindowBg},
		{f.WindowFg, &t.WindowFg},
		{f.Accent, &t.Accent},
		{f.Muted, &t.Muted},
		{f.BorderFocused, &t.BorderFocused},
		{f.TitleFgFocused, &t.TitleFgFocused},
		{f.TitleBgFocused, &t.TitleBgFocused},
		{f.CloseGlyph, &t.CloseGlyph},
	}
	for _, fd := range fields {
		if fd.hex == "" {
			continue
		}
		c, err := parseHex(fd.hex)
		if err != nil {
			return Theme{}, err
		}
		*fd.dst = c
	}

	// Unfocused colors: explicit value wins, otherwise derive from the
	// focused one so partial themes stay coherent
	derived := []struct {
		hex  string
		dst  *terminal.RGB
		from terminal.RGB
	}{
		{f.BorderUnfocused, &t.BorderUnfocused, t.BorderFocused},
		{f.TitleFgUnfocused, &t.TitleFgUnfocused, t.TitleFgFocused},
		{f.TitleBgUnfocused, &t.TitleBgUnfocused, t.TitleBgFocused},
	}
	for _, fd := range derived {
		if fd.hex != "" {
			c, err := parseHex(fd.hex)
			if err != nil {
				return Theme{}, err
			}
			*fd.dst = c
			continue
		}
		*fd.dst = Dim(fd.from, t.WindowBg)
	}

	return t, nil
}

// Dim blends c toward the background in LCh space, keeping the hue
// while collapsing lightness and chroma. Used to derive unfocused
// chrome variants from focused colors.
func Dim(c, bg terminal.RGB) terminal.RGB {
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	to := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	out := from.BlendLuvLCh(to, 0.55).Clamped()
	r, g, b := out.RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}

func parseHex(s string) (terminal.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return terminal.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return terminal.RGB{R: r, G: g, B: b}, nil
}
