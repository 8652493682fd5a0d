// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/texture"
)

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrNotFinite       = errors.New("value is not finite")
)

// setProperty parses value and applies it to the noise or texture property of the
// same name as the preset record. Setters clamp, so any parsable value is accepted.
func setProperty(n *texture.Noise, t *texture.Texture, name, value string) error {
	var err error
	switch name {
	case "seed":
		var seed int64
		if seed, err = strconv.ParseInt(value, 10, 32); err == nil {
			n.SetSeed(int32(seed))
		}
	case "frequency":
		err = setFloat(value, n.SetFrequency)
	case "octaves":
		err = setInt(value, n.SetOctaves)
	case "lacunarity":
		err = setFloat(value, n.SetLacunarity)
	case "gain":
		err = setFloat(value, n.SetGain)
	case "ping_pong_strength":
		err = setFloat(value, n.SetPingPongStrength)
	case "fractal_type":
		var mode noise.FractalMode
		if err = mode.UnmarshalText([]byte(value)); err == nil {
			n.SetFractalMode(mode)
		}
	case "domain_warp_enabled":
		err = setBool(value, n.SetWarpEnabled)
	case "domain_warp_amplitude":
		err = setFloat(value, n.SetWarpAmplitude)
	case "domain_warp_frequency":
		err = setFloat(value, n.SetWarpFrequency)
	case "domain_warp_fractal_type":
		var mode noise.WarpFractalMode
		if err = mode.UnmarshalText([]byte(value)); err == nil {
			n.SetWarpFractal(mode)
		}
	case "domain_warp_octaves":
		err = setInt(value, n.SetWarpOctaves)
	case "domain_warp_lacunarity":
		err = setFloat(value, n.SetWarpLacunarity)
	case "domain_warp_gain":
		err = setFloat(value, n.SetWarpGain)

	case "width":
		err = setInt(value, discard(t.SetWidth))
	case "height":
		err = setInt(value, discard(t.SetHeight))
	case "invert":
		err = setBool(value, discard(t.SetInvert))
	case "in_3d_space":
		err = setBool(value, discard(t.SetIn3DSpace))
	case "slice":
		err = setFloat(value, discard(t.SetSlice))
	case "normalize":
		err = setBool(value, discard(t.SetNormalize))
	case "seamless":
		err = setBool(value, discard(t.SetSeamless))
	case "seamless_tiling":
		var tiling grid.Tiling
		if err = tiling.UnmarshalText([]byte(value)); err == nil {
			t.SetSeamlessTiling(tiling)
		}
	case "seamless_blend_skirt":
		err = setFloat(value, discard(t.SetSeamlessBlendSkirt))
	case "color_ramp":
		var ramp *texture.Ramp
		if value != "" {
			ramp, err = texture.ParseRamp(value, texture.InterpolateRGB)
		}
		if err == nil {
			t.SetColorRamp(ramp)
		}
	case "as_normal_map":
		err = setBool(value, discard(t.SetNormalMap))
	case "bump_strength":
		err = setFloat(value, discard(t.SetBumpStrength))
	case "generate_mipmaps":
		err = setBool(value, discard(t.SetMipmaps))
	default:
		return fmt.Errorf("%w %q", ErrUnknownProperty, name)
	}

	if err != nil {
		return fmt.Errorf("property %s: %w", name, err)
	}
	return nil
}

func setFloat(value string, set func(float32) bool) error {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrNotFinite
	}
	set(float32(f))
	return nil
}

func setInt(value string, set func(int) bool) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	set(i)
	return nil
}

func setBool(value string, set func(bool) bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	set(b)
	return nil
}

// discard adapts a texture setter, which reports nothing, to the noise setter shape.
func discard[T any](set func(T)) func(T) bool {
	return func(v T) bool {
		set(v)
		return true
	}
}
