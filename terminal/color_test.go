package terminal

import "testing"

func TestRGBTo256KnownColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want uint8
	}{
		{"Black", RGB{0, 0, 0}, 16},
		{"White", RGB{255, 255, 255}, 231},
		{"Red", RGB{255, 0, 0}, 196},
		{"Green", RGB{0, 255, 0}, 46},
		{"Blue", RGB{0, 0, 255}, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.rgb); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNamedColors(t *testing.T) {
	tests := []struct {
		name string
		got  RGB
		want RGB
	}{
		{"Black", Black, RGB{0, 0, 0}},
		{"Gray", Gray, RGB{128, 128, 128}},
		{"White", White, RGB{255, 255, 255}},
	}
	for _, tt := range tests {
		if !tt.got.Equal(tt.want) {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, tt.got)
		}
	}
	// Gray sits on the achromatic axis so it quantizes to the ramp
	if got := RGBTo256(Gray); got < grayscaleStart {
		t.Errorf("Expected Gray in grayscale ramp, got %d", got)
	}
}

func TestRGBTo256GrayscaleRamp(t *testing.T) {
	// Mid grays map into the 232-255 grayscale ramp, not the color cube
	got := RGBTo256(RGB{128, 128, 128})
	if got < 232 {
		t.Errorf("Expected grayscale ramp index, got %d", got)
	}
}

func TestCube256RoundTrip(t *testing.T) {
	for r := uint8(0); r < 6; r++ {
		for g := uint8(0); g < 6; g++ {
			for b := uint8(0); b < 6; b++ {
				idx := Cube256(r, g, b)

				cr, cg, cb := CubeRGB256(idx)
				if cr != r || cg != g || cb != b {
					t.Errorf("Index %d: expected coords (%d,%d,%d), got (%d,%d,%d)",
						idx, r, g, b, cr, cg, cb)
				}

				// Exact cube colors quantize back to their own index
				rgb := RGB{cubeValues[r], cubeValues[g], cubeValues[b]}
				if got := RGBTo256(rgb); got != idx {
					t.Errorf("Cube(%d,%d,%d)=%d: expected round-trip, got %d", r, g, b, idx, got)
				}
			}
		}
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
		ok   bool
	}{
		{"256", ColorMode256, true},
		{"truecolor", ColorModeTrueColor, true},
		{"24bit", ColorModeTrueColor, true},
		{"bogus", ColorMode256, false},
	}

	for _, tt := range tests {
		got, ok := ParseColorMode(tt.in)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.in, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}

	// Empty and auto defer to terminal detection, any valid mode accepted
	for _, in := range []string{"", "auto"} {
		if _, ok := ParseColorMode(in); !ok {
			t.Errorf("%q: expected ok", in)
		}
	}
}
