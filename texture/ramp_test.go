// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestRamp_Sample(t *testing.T) {
	ramp := Grayscale()

	if c := ramp.Sample(0.5); !c.AlmostEqualRgb(colorful.Color{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("Sample(0.5) expected mid gray, got %s", c.Hex())
	}
	if c := ramp.RGBA(0.5); c != (color.RGBA{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("RGBA(0.5) expected 128, got %v", c)
	}
	if c := ramp.RGBA(-3); c != (color.RGBA{A: 255}) {
		t.Errorf("RGBA(-3) expected black, got %v", c)
	}
	if c := ramp.RGBA(3); c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("RGBA(3) expected white, got %v", c)
	}

	var empty Ramp
	if c := empty.Sample(0.5); c != (colorful.Color{}) {
		t.Errorf("empty ramp expected black, got %s", c.Hex())
	}
}

func TestRamp_Constant(t *testing.T) {
	ramp := NewRamp(InterpolateConstant, Stop{0.5, Gray(255)}, Stop{0, Gray(0)})

	tests := []struct {
		t   float32
		out byte
	}{
		{0, 0},
		{0.25, 0},
		{0.49, 0},
		{0.5, 255},
		{1, 255},
	}

	for _, test := range tests {
		if c := ramp.RGBA(test.t); c.R != test.out {
			t.Errorf("RGBA(%f) expected %d, got %d", test.t, test.out, c.R)
		}
	}
}

func TestRamp_Lab(t *testing.T) {
	a, b := RGB(255, 0, 0), RGB(0, 0, 255)
	ramp := NewRamp(InterpolateLab, Stop{0, a}, Stop{1, b})

	if c := ramp.Sample(0); !c.AlmostEqualRgb(a) {
		t.Errorf("Sample(0) expected %s, got %s", a.Hex(), c.Hex())
	}
	if c := ramp.Sample(1); !c.AlmostEqualRgb(b) {
		t.Errorf("Sample(1) expected %s, got %s", b.Hex(), c.Hex())
	}
	if c := ramp.Sample(0.5); !c.IsValid() {
		t.Errorf("Sample(0.5) out of gamut: %v", c)
	}
}

func TestRamp_Parse(t *testing.T) {
	ramp := TerrainRamp()
	text := ramp.String()

	parsed, err := ParseRamp(text, InterpolateRGB)
	if err != nil {
		t.Fatal(err)
	}
	if s := parsed.String(); s != text {
		t.Errorf("round trip expected %q, got %q", text, s)
	}

	var unmarshaled Ramp
	if err := unmarshaled.UnmarshalText([]byte("1:#ffffff, 0:#000000")); err != nil {
		t.Fatal(err)
	}
	if s := unmarshaled.String(); s != "0:#000000,1:#ffffff" {
		t.Errorf("expected sorted stops, got %q", s)
	}

	bad := []string{"", "nonsense", "x:#000000", "0:#zzzzzz"}
	for _, s := range bad {
		if _, err := ParseRamp(s, InterpolateRGB); err == nil {
			t.Errorf("ParseRamp(%q) expected error", s)
		}
	}
}
