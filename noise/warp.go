// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"fmt"
)

// WarpFractalMode selects how warp octaves are combined.
type WarpFractalMode uint8

const (
	// WarpFractalNone applies a single warp at the configured amplitude and frequency.
	WarpFractalNone WarpFractalMode = iota
	// WarpFractalProgressive feeds each octave's output into the next octave.
	WarpFractalProgressive
	// WarpFractalIndependent samples every octave at the original coordinate and
	// sums the displacements.
	WarpFractalIndependent
	warpFractalModeCount
)

var warpFractalModeNames = [...]string{
	WarpFractalNone:        "none",
	WarpFractalProgressive: "progressive",
	WarpFractalIndependent: "independent",
}

func (mode WarpFractalMode) String() string {
	if mode >= warpFractalModeCount {
		return fmt.Sprintf("WarpFractalMode(%d)", uint8(mode))
	}
	return warpFractalModeNames[mode]
}

func (mode WarpFractalMode) MarshalText() ([]byte, error) {
	if mode >= warpFractalModeCount {
		return nil, fmt.Errorf("invalid warp fractal mode %d", uint8(mode))
	}
	return []byte(warpFractalModeNames[mode]), nil
}

func (mode *WarpFractalMode) UnmarshalText(text []byte) error {
	for i, name := range warpFractalModeNames {
		if name == string(text) {
			*mode = WarpFractalMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown warp fractal mode %q", text)
}

// warpScale normalizes the accumulated corner directions to about unit length.
const warpScale = 38.283687591552734375

var ErrWarpOctaves = errors.New("domain warp octaves must be at least 1")

// WarpConfig holds the parameters of domain warping.
type WarpConfig struct {
	Enabled    bool
	Amplitude  float32
	Frequency  float32
	Fractal    WarpFractalMode
	Octaves    uint16
	Lacunarity float32
	Gain       float32
}

func DefaultWarpConfig() WarpConfig {
	return WarpConfig{
		Enabled:    false,
		Amplitude:  30,
		Frequency:  0.05,
		Fractal:    WarpFractalProgressive,
		Octaves:    5,
		Lacunarity: 6,
		Gain:       0.5,
	}
}

func (w *WarpConfig) Validate() error {
	if w.Fractal != WarpFractalNone && w.Octaves < 1 {
		return ErrWarpOctaves
	}
	if !(w.Frequency >= 0 && w.Frequency <= 1) {
		return fmt.Errorf("domain warp: %w", ErrFrequency)
	}
	return nil
}

// Warp2D displaces (x, y) with c's seed. Displacements are scaled by the fractal
// bounding of c, not of the warp octaves. It ignores Enabled; callers decide whether
// to warp at all.
func (w *WarpConfig) Warp2D(c *Config, x, y float32) (float32, float32) {
	seed := c.Seed
	bounding := FractalBounding(c.Gain, c.Octaves)

	switch w.Fractal {
	case WarpFractalProgressive:
		amp, freq := w.Amplitude*bounding, w.Frequency
		for i := uint16(0); i < w.Octaves; i++ {
			dx, dy := single2(seed, amp, freq, x, y)
			x += dx
			y += dy

			amp *= w.Gain
			freq *= w.Lacunarity
		}
		return x, y
	case WarpFractalIndependent:
		var sx, sy float32
		amp, freq := w.Amplitude*bounding, w.Frequency
		for i := uint16(0); i < w.Octaves; i++ {
			dx, dy := single2(seed, amp, freq, x, y)
			sx += dx
			sy += dy

			amp *= w.Gain
			freq *= w.Lacunarity
		}
		return x + sx, y + sy
	default:
		dx, dy := single2(seed, w.Amplitude*bounding, w.Frequency, x, y)
		return x + dx, y + dy
	}
}

// Warp3D displaces (x, y, z) like Warp2D.
func (w *WarpConfig) Warp3D(c *Config, x, y, z float32) (float32, float32, float32) {
	seed := c.Seed
	bounding := FractalBounding(c.Gain, c.Octaves)

	switch w.Fractal {
	case WarpFractalProgressive:
		amp, freq := w.Amplitude*bounding, w.Frequency
		for i := uint16(0); i < w.Octaves; i++ {
			dx, dy, dz := single3(seed, amp, freq, x, y, z)
			x += dx
			y += dy
			z += dz

			amp *= w.Gain
			freq *= w.Lacunarity
		}
		return x, y, z
	case WarpFractalIndependent:
		var sx, sy, sz float32
		amp, freq := w.Amplitude*bounding, w.Frequency
		for i := uint16(0); i < w.Octaves; i++ {
			dx, dy, dz := single3(seed, amp, freq, x, y, z)
			sx += dx
			sy += dy
			sz += dz

			amp *= w.Gain
			freq *= w.Lacunarity
		}
		return x + sx, y + sy, z + sz
	default:
		dx, dy, dz := single3(seed, w.Amplitude*bounding, w.Frequency, x, y, z)
		return x + dx, y + dy, z + dz
	}
}

// single2 walks the simplex triangle around (x, y) * freq and returns the weighted sum
// of corner directions scaled by amp.
func single2(seed int32, amp, freq, x, y float32) (float32, float32) {
	amp *= warpScale
	c := simplex2(x*freq, y*freq)

	var vx, vy float32
	for k := range c.x {
		t := falloff2 - c.x[k]*c.x[k] - c.y[k]*c.y[k]
		if t <= 0 {
			continue
		}
		t *= t
		influence := t * t
		wx, wy := warpGrad2(hash2(c.i+c.di[k], c.j+c.dj[k], seed), c.x[k], c.y[k])
		vx += influence * wx
		vy += influence * wy
	}

	return vx * amp, vy * amp
}

func single3(seed int32, amp, freq, x, y, z float32) (float32, float32, float32) {
	amp *= warpScale
	c := simplex3(x*freq, y*freq, z*freq)

	var vx, vy, vz float32
	for k := range c.x {
		t := falloff3 - c.x[k]*c.x[k] - c.y[k]*c.y[k] - c.z[k]*c.z[k]
		if t <= 0 {
			continue
		}
		t *= t
		influence := t * t
		wx, wy, wz := warpGrad3(hash3(c.i+c.di[k], c.j+c.dj[k], c.k+c.dk[k], seed), c.x[k], c.y[k], c.z[k])
		vx += influence * wx
		vy += influence * wy
		vz += influence * wz
	}

	return vx * amp, vy * amp, vz * amp
}
