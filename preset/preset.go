// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/texture"
	"github.com/finnbear/moderation"
)

const MaxNameLength = 32

var (
	ErrNameEmpty         = errors.New("preset name is empty")
	ErrNameLength        = fmt.Errorf("preset name is longer than %d characters", MaxNameLength)
	ErrNameInappropriate = errors.New("preset name is inappropriate")
	ErrNotFound          = errors.New("preset not found")
	ErrExists            = errors.New("preset already exists")
)

// Preset is a named, persisted noise configuration. Field names follow the
// property names of the noise resource.
type Preset struct {
	Name    string `json:"name" dynamo:"name"`
	Updated int64  `json:"updated,omitempty" dynamo:"updated,omitempty"` // unix seconds

	Seed             int32             `json:"seed" dynamo:"seed"`
	Frequency        float32           `json:"frequency" dynamo:"frequency"`
	Octaves          uint16            `json:"octaves" dynamo:"octaves"`
	Lacunarity       float32           `json:"lacunarity" dynamo:"lacunarity"`
	Gain             float32           `json:"gain" dynamo:"gain"`
	PingPongStrength float32           `json:"ping_pong_strength" dynamo:"ping_pong_strength"`
	FractalType      noise.FractalMode `json:"fractal_type" dynamo:"fractal_type"`

	DomainWarpEnabled     bool                  `json:"domain_warp_enabled" dynamo:"domain_warp_enabled"`
	DomainWarpAmplitude   float32               `json:"domain_warp_amplitude" dynamo:"domain_warp_amplitude"`
	DomainWarpFrequency   float32               `json:"domain_warp_frequency" dynamo:"domain_warp_frequency"`
	DomainWarpFractalType noise.WarpFractalMode `json:"domain_warp_fractal_type" dynamo:"domain_warp_fractal_type"`
	DomainWarpOctaves     uint16                `json:"domain_warp_octaves" dynamo:"domain_warp_octaves"`
	DomainWarpLacunarity  float32               `json:"domain_warp_lacunarity" dynamo:"domain_warp_lacunarity"`
	DomainWarpGain        float32               `json:"domain_warp_gain" dynamo:"domain_warp_gain"`

	Texture *Texture `json:"texture,omitempty" dynamo:"texture,omitempty"`
}

// Texture is the persisted form of texture.Options.
type Texture struct {
	Width              int         `json:"width" dynamo:"width"`
	Height             int         `json:"height" dynamo:"height"`
	Invert             bool        `json:"invert,omitempty" dynamo:"invert,omitempty"`
	In3DSpace          bool        `json:"in_3d_space,omitempty" dynamo:"in_3d_space,omitempty"`
	Slice              float32     `json:"slice,omitempty" dynamo:"slice,omitempty"`
	Normalize          bool        `json:"normalize" dynamo:"normalize"`
	Seamless           bool        `json:"seamless,omitempty" dynamo:"seamless,omitempty"`
	SeamlessTiling     grid.Tiling `json:"seamless_tiling,omitempty" dynamo:"seamless_tiling,omitempty"`
	SeamlessBlendSkirt float32     `json:"seamless_blend_skirt" dynamo:"seamless_blend_skirt"`
	ColorRamp          string      `json:"color_ramp,omitempty" dynamo:"color_ramp,omitempty"`
	AsNormalMap        bool        `json:"as_normal_map,omitempty" dynamo:"as_normal_map,omitempty"`
	BumpStrength       float32     `json:"bump_strength" dynamo:"bump_strength"`
	GenerateMipmaps    bool        `json:"generate_mipmaps,omitempty" dynamo:"generate_mipmaps,omitempty"`
}

// Default is a preset of the default generator, without texture options.
func Default(name string) Preset {
	return FromGenerator(name, noise.NewDefault())
}

func FromGenerator(name string, g noise.Generator) Preset {
	return Preset{
		Name:             name,
		Seed:             g.Seed,
		Frequency:        g.Frequency,
		Octaves:          g.Octaves,
		Lacunarity:       g.Lacunarity,
		Gain:             g.Gain,
		PingPongStrength: g.PingPongStrength,
		FractalType:      g.Mode,

		DomainWarpEnabled:     g.Warp.Enabled,
		DomainWarpAmplitude:   g.Warp.Amplitude,
		DomainWarpFrequency:   g.Warp.Frequency,
		DomainWarpFractalType: g.Warp.Fractal,
		DomainWarpOctaves:     g.Warp.Octaves,
		DomainWarpLacunarity:  g.Warp.Lacunarity,
		DomainWarpGain:        g.Warp.Gain,
	}
}

// Generator converts the preset back into a generator. It does not validate.
func (p *Preset) Generator() noise.Generator {
	return noise.Generator{
		Config: noise.Config{
			Seed:             p.Seed,
			Octaves:          p.Octaves,
			Frequency:        p.Frequency,
			Lacunarity:       p.Lacunarity,
			Gain:             p.Gain,
			PingPongStrength: p.PingPongStrength,
		},
		Mode: p.FractalType,
		Warp: noise.WarpConfig{
			Enabled:    p.DomainWarpEnabled,
			Amplitude:  p.DomainWarpAmplitude,
			Frequency:  p.DomainWarpFrequency,
			Fractal:    p.DomainWarpFractalType,
			Octaves:    p.DomainWarpOctaves,
			Lacunarity: p.DomainWarpLacunarity,
			Gain:       p.DomainWarpGain,
		},
	}
}

func FromOptions(o texture.Options) *Texture {
	t := &Texture{
		Width:              o.Width,
		Height:             o.Height,
		Invert:             o.Invert,
		In3DSpace:          o.In3DSpace,
		Slice:              o.Slice,
		Normalize:          o.Normalize,
		Seamless:           o.Seamless,
		SeamlessTiling:     o.Tiling,
		SeamlessBlendSkirt: o.Skirt,
		AsNormalMap:        o.NormalMap,
		BumpStrength:       o.BumpStrength,
		GenerateMipmaps:    o.Mipmaps,
	}
	if o.Ramp != nil && o.Ramp.Len() > 0 {
		t.ColorRamp = o.Ramp.String()
	}
	return t
}

// Options converts the persisted texture settings, clamped to their ranges.
func (t *Texture) Options() (texture.Options, error) {
	o := texture.Options{
		Width:        t.Width,
		Height:       t.Height,
		Invert:       t.Invert,
		In3DSpace:    t.In3DSpace,
		Slice:        t.Slice,
		Normalize:    t.Normalize,
		Seamless:     t.Seamless,
		Tiling:       t.SeamlessTiling,
		Skirt:        t.SeamlessBlendSkirt,
		NormalMap:    t.AsNormalMap,
		BumpStrength: t.BumpStrength,
		Mipmaps:      t.GenerateMipmaps,
	}
	if t.ColorRamp != "" {
		ramp, err := texture.ParseRamp(t.ColorRamp, texture.InterpolateRGB)
		if err != nil {
			return texture.Options{}, err
		}
		o.Ramp = ramp
	}
	return o.Clamped(), nil
}

// Validate checks the name and the noise parameters.
func (p *Preset) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	g := p.Generator()
	if err := g.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// ValidateName rejects empty, overlong and inappropriate names.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrNameEmpty
	case utf8.RuneCountInString(name) > MaxNameLength:
		return ErrNameLength
	case moderation.Scan(name).Is(moderation.Inappropriate):
		return ErrNameInappropriate
	}
	return nil
}
