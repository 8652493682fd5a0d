// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"fmt"
)

// FractalMode selects how octaves are combined.
type FractalMode uint8

const (
	// FractalNone samples a single octave at the base frequency.
	FractalNone FractalMode = iota
	FractalFBM
	FractalRidged
	FractalPingPong
	fractalModeCount
)

var fractalModeNames = [...]string{
	FractalNone:     "none",
	FractalFBM:      "fbm",
	FractalRidged:   "ridged",
	FractalPingPong: "ping_pong",
}

func (mode FractalMode) String() string {
	if mode >= fractalModeCount {
		return fmt.Sprintf("FractalMode(%d)", uint8(mode))
	}
	return fractalModeNames[mode]
}

func (mode FractalMode) MarshalText() ([]byte, error) {
	if mode >= fractalModeCount {
		return nil, fmt.Errorf("invalid fractal mode %d", uint8(mode))
	}
	return []byte(fractalModeNames[mode]), nil
}

func (mode *FractalMode) UnmarshalText(text []byte) error {
	for i, name := range fractalModeNames {
		if name == string(text) {
			*mode = FractalMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown fractal mode %q", text)
}

// Default parameters.
const (
	DefaultSeed             = 0
	DefaultOctaves          = 5
	DefaultFrequency        = 0.01
	DefaultLacunarity       = 2.0
	DefaultGain             = 0.5
	DefaultPingPongStrength = 2.0
)

var (
	ErrOctaves    = errors.New("octaves must be at least 1")
	ErrGain       = errors.New("gain must be positive")
	ErrLacunarity = errors.New("lacunarity must be positive")
	ErrFrequency  = errors.New("frequency must be within [0, 1]")
	ErrPingPong   = errors.New("ping pong strength must be positive")
)

// Config holds the parameters of fractal noise. It is a plain value; callers that
// share one between goroutines must not mutate it while sampling.
type Config struct {
	Seed             int32
	Octaves          uint16
	Frequency        float32
	Lacunarity       float32
	Gain             float32 // persistence: amplitude multiplier between octaves
	PingPongStrength float32
}

func DefaultConfig() Config {
	return Config{
		Seed:             DefaultSeed,
		Octaves:          DefaultOctaves,
		Frequency:        DefaultFrequency,
		Lacunarity:       DefaultLacunarity,
		Gain:             DefaultGain,
		PingPongStrength: DefaultPingPongStrength,
	}
}

// Validate reports the first parameter that would make sampling ill-defined.
func (c *Config) Validate() error {
	switch {
	case c.Octaves < 1:
		return ErrOctaves
	case !(c.Gain > 0):
		return ErrGain
	case !(c.Lacunarity > 0):
		return ErrLacunarity
	case !(c.Frequency >= 0 && c.Frequency <= 1):
		return ErrFrequency
	case !(c.PingPongStrength > 0):
		return ErrPingPong
	}
	return nil
}

// Sample1D evaluates the fractal selected by mode.
func (c *Config) Sample1D(mode FractalMode, x float32) float32 {
	switch mode {
	case FractalFBM:
		return c.FBM1D(x)
	case FractalRidged:
		return c.Ridged1D(x)
	case FractalPingPong:
		return c.PingPong1D(x)
	default:
		return Noise1D(x*c.Frequency, c.Seed)
	}
}

// Sample2D evaluates the fractal selected by mode.
func (c *Config) Sample2D(mode FractalMode, x, y float32) float32 {
	switch mode {
	case FractalFBM:
		return c.FBM2D(x, y)
	case FractalRidged:
		return c.Ridged2D(x, y)
	case FractalPingPong:
		return c.PingPong2D(x, y)
	default:
		return Noise2D(x*c.Frequency, y*c.Frequency, c.Seed)
	}
}

// Sample3D evaluates the fractal selected by mode.
func (c *Config) Sample3D(mode FractalMode, x, y, z float32) float32 {
	switch mode {
	case FractalFBM:
		return c.FBM3D(x, y, z)
	case FractalRidged:
		return c.Ridged3D(x, y, z)
	case FractalPingPong:
		return c.PingPong3D(x, y, z)
	default:
		return Noise3D(x*c.Frequency, y*c.Frequency, z*c.Frequency, c.Seed)
	}
}
