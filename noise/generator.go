// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

// Generator is a snapshot of everything needed to sample warped fractal noise.
// It is a value type so a copy can be handed to concurrent samplers while the
// original keeps changing.
type Generator struct {
	Config
	Mode FractalMode
	Warp WarpConfig
}

// NewDefault returns an FBM generator with default parameters and warping disabled.
func NewDefault() Generator {
	return New(DefaultConfig(), FractalFBM, DefaultWarpConfig())
}

func New(config Config, mode FractalMode, warp WarpConfig) Generator {
	return Generator{
		Config: config,
		Mode:   mode,
		Warp:   warp,
	}
}

// Validate checks the fractal and, if enabled, the warp parameters.
func (g *Generator) Validate() error {
	if err := g.Config.Validate(); err != nil {
		return err
	}
	if g.Warp.Enabled {
		return g.Warp.Validate()
	}
	return nil
}

// Sample1D implements grid.Source. 1D noise has no domain warp.
func (g Generator) Sample1D(x float32) float32 {
	return g.Config.Sample1D(g.Mode, x)
}

// Sample2D implements grid.Source.
func (g Generator) Sample2D(x, y float32) float32 {
	if g.Warp.Enabled {
		x, y = g.Warp.Warp2D(&g.Config, x, y)
	}
	return g.Config.Sample2D(g.Mode, x, y)
}

// Sample3D implements grid.Source.
func (g Generator) Sample3D(x, y, z float32) float32 {
	if g.Warp.Enabled {
		x, y, z = g.Warp.Warp3D(&g.Config, x, y, z)
	}
	return g.Config.Sample3D(g.Mode, x, y, z)
}
