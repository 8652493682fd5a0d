// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
)

// Options controls how noise is turned into an image.
type Options struct {
	Width     int
	Height    int
	Invert    bool
	In3DSpace bool
	Slice     float32 // z of the plane sampled when In3DSpace
	Normalize bool

	Seamless bool
	Tiling   grid.Tiling // TilingBlend or TilingTorus, used when Seamless
	Skirt    float32

	Ramp *Ramp // nil or empty for grayscale

	NormalMap    bool
	BumpStrength float32

	Mipmaps bool
}

// Ranges of the clamped options.
const (
	MinSize      = 1
	MaxSkirt     = grid.MaxSkirt
	DefaultSize  = 512
	DefaultSkirt = 0.1
	DefaultBump  = 8
)

func DefaultOptions() Options {
	return Options{
		Width:        DefaultSize,
		Height:       DefaultSize,
		Normalize:    true,
		Tiling:       grid.TilingBlend,
		Skirt:        DefaultSkirt,
		BumpStrength: DefaultBump,
		Mipmaps:      true,
	}
}

// Clamped returns a copy of o with sizes and skirt brought into range.
func (o Options) Clamped() Options {
	o.Width = maxInt(o.Width, MinSize)
	o.Height = maxInt(o.Height, MinSize)
	o.Skirt = clamp(o.Skirt, 0, MaxSkirt)
	return o
}

// Spec is the grid sampled for o.
func (o Options) Spec() grid.Spec {
	spec := grid.Spec{
		Width:     o.Width,
		Height:    o.Height,
		Depth:     1,
		Invert:    o.Invert,
		Normalize: o.Normalize,
		In3DSpace: o.In3DSpace,
		Slice:     o.Slice,
		Skirt:     o.Skirt,
	}
	if o.Seamless {
		spec.Tiling = o.Tiling
		if spec.Tiling == grid.TilingNone {
			spec.Tiling = grid.TilingBlend
		}
	}
	return spec
}

// Render samples g and applies the color ramp and normal map conversion. Mipmaps are
// not generated; see Mipmaps. The result is an *image.Gray unless a ramp or normal
// map is used, in which case it is an *image.RGBA.
func Render(g noise.Generator, o Options) (image.Image, error) {
	values, err := grid.Sample2D(g, o.Spec())
	if err != nil {
		return nil, err
	}
	defer values.Pool()

	gray := image.NewGray(image.Rect(0, 0, values.Width, values.Height))
	for i, v := range values.Values {
		gray.Pix[i] = floatToByte(v)
	}

	var img image.Image = gray
	if o.Ramp != nil && o.Ramp.Len() > 0 {
		img = Colorize(gray, o.Ramp)
	}
	if o.NormalMap {
		img = NormalMap(img, o.BumpStrength)
	}
	return img, nil
}

// Colorize maps each gray level through the ramp.
func Colorize(gray *image.Gray, ramp *Ramp) *image.RGBA {
	var lut [256][4]byte
	for i := range lut {
		c := ramp.RGBA(float32(i) * (1.0 / 255))
		lut[i] = [4]byte{c.R, c.G, c.B, c.A}
	}

	bounds := gray.Bounds()
	img := image.NewRGBA(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+bounds.Dx()]
		dst := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()*4]
		for x, v := range src {
			copy(dst[x*4:x*4+4], lut[v][:])
		}
	}
	return img
}
