// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolation selects how a Ramp fills the space between stops.
type Interpolation uint8

const (
	// InterpolateRGB blends linearly in sRGB.
	InterpolateRGB Interpolation = iota
	// InterpolateLab blends in CIE L*a*b*, which keeps perceived lightness even.
	InterpolateLab
	// InterpolateConstant holds each stop's color until the next stop.
	InterpolateConstant
)

// Stop is a color at an offset in [0, 1].
type Stop struct {
	Offset float32
	Color  colorful.Color
}

// Ramp maps a value in [0, 1] to a color. The zero Ramp has no stops and
// maps everything to black.
type Ramp struct {
	Stops         []Stop // Sorted by Offset
	Interpolation Interpolation
}

var ErrRampSyntax = errors.New("color ramp must look like 0:#000000,1:#ffffff")

// NewRamp sorts the stops by offset.
func NewRamp(interpolation Interpolation, stops ...Stop) *Ramp {
	r := &Ramp{
		Stops:         append([]Stop(nil), stops...),
		Interpolation: interpolation,
	}
	sort.SliceStable(r.Stops, func(i, j int) bool {
		return r.Stops[i].Offset < r.Stops[j].Offset
	})
	return r
}

// Grayscale is the identity ramp.
func Grayscale() *Ramp {
	return NewRamp(InterpolateRGB, Stop{0, Gray(0)}, Stop{1, Gray(255)})
}

// TerrainRamp colors a heightmap from deep water to snow.
func TerrainRamp() *Ramp {
	return NewRamp(InterpolateRGB,
		Stop{0, RGB(0, 50, 115)},
		Stop{0.45, RGB(0, 75, 130)},
		Stop{0.5, RGB(194, 178, 128)},
		Stop{0.55, RGB(90, 180, 30)},
		Stop{0.75, RGB(105, 110, 115)},
		Stop{1, Gray(220)},
	)
}

func Gray(v byte) colorful.Color {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) colorful.Color {
	const factor = 1.0 / 255
	return colorful.Color{R: float64(r) * factor, G: float64(g) * factor, B: float64(b) * factor}
}

func (r *Ramp) Len() int {
	return len(r.Stops)
}

// Sample returns the color at t, clamped to [0, 1].
func (r *Ramp) Sample(t float32) colorful.Color {
	stops := r.Stops
	if len(stops) == 0 {
		return colorful.Color{}
	}

	t = clamp(t, 0, 1)

	// First stop with an offset past t.
	i := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset > t
	})
	switch {
	case i == 0:
		return stops[0].Color
	case i == len(stops):
		return stops[len(stops)-1].Color
	}

	a, b := stops[i-1], stops[i]
	factor := float64((t - a.Offset) / (b.Offset - a.Offset))

	switch r.Interpolation {
	case InterpolateConstant:
		return a.Color
	case InterpolateLab:
		return a.Color.BlendLab(b.Color, factor).Clamped()
	default:
		return a.Color.BlendRgb(b.Color, factor)
	}
}

// RGBA is Sample as an opaque color.RGBA.
func (r *Ramp) RGBA(t float32) color.RGBA {
	red, green, blue := r.Sample(t).RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// String formats the stops as offset:#rrggbb pairs separated by commas.
func (r *Ramp) String() string {
	var builder strings.Builder
	for i, stop := range r.Stops {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.FormatFloat(float64(stop.Offset), 'g', -1, 32))
		builder.WriteByte(':')
		builder.WriteString(stop.Color.Hex())
	}
	return builder.String()
}

// ParseRamp parses the output of Ramp.String.
func ParseRamp(s string, interpolation Interpolation) (*Ramp, error) {
	var stops []Stop
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		offset, hex, ok := strings.Cut(field, ":")
		if !ok {
			return nil, ErrRampSyntax
		}
		o, err := strconv.ParseFloat(offset, 32)
		if err != nil {
			return nil, fmt.Errorf("color ramp offset %q: %w", offset, err)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("color ramp color %q: %w", hex, err)
		}
		stops = append(stops, Stop{Offset: float32(o), Color: c})
	}

	if len(stops) == 0 {
		return nil, ErrRampSyntax
	}
	return NewRamp(interpolation, stops...), nil
}

func (r *Ramp) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Ramp) UnmarshalText(text []byte) error {
	parsed, err := ParseRamp(string(text), r.Interpolation)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
