// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"github.com/dgravesa/go-parallel/parallel"
)

// At1D returns the processed value at continuous coordinate x of a 1D grid.
func (spec *Spec) At1D(src Source, x float32) float32 {
	var n float32
	if spec.Tiling == TilingNone {
		n = src.Sample1D(x)
	} else {
		n = SeamlessAt1D(src, float32(spec.Width), spec.skirt(), x)
	}
	return spec.post(n)
}

// At2D returns the processed value at continuous coordinate (x, y) of a 2D grid.
// Torus tiling always samples 3D noise, so it ignores In3DSpace.
func (spec *Spec) At2D(src Source, x, y float32) float32 {
	if spec.In3DSpace {
		src = slice{Source: src, z: spec.Slice}
	}

	var n float32
	switch spec.Tiling {
	case TilingBlend:
		n = SeamlessAt2D(src, float32(spec.Width), float32(spec.Height), spec.skirt(), x, y)
	case TilingTorus:
		n = TorusAt2D(src, float32(spec.Width), float32(spec.Height), x, y)
	default:
		n = src.Sample2D(x, y)
	}
	return spec.post(n)
}

// At3D returns the processed value at continuous coordinate (x, y, z) of a 3D grid.
func (spec *Spec) At3D(src Source, x, y, z float32) float32 {
	var n float32
	if spec.Tiling == TilingNone {
		n = src.Sample3D(x, y, z)
	} else {
		n = SeamlessAt3D(src, float32(spec.Width), float32(spec.Height), float32(spec.Depth), spec.skirt(), x, y, z)
	}
	return spec.post(n)
}

// Sample1D fills a Width x 1 x 1 grid. Height and Depth are ignored.
func Sample1D(src Source, spec Spec) (*Grid, error) {
	spec.Height, spec.Depth = 1, 1
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := New(spec.Width, 1, 1)
	for i := range g.Values {
		g.Values[i] = spec.At1D(src, float32(i))
	}
	return g, nil
}

// Sample2D fills a Width x Height grid, one row per task. Depth is ignored.
func Sample2D(src Source, spec Spec) (*Grid, error) {
	spec.Depth = 1
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := New(spec.Width, spec.Height, 1)
	parallel.For(spec.Height, func(j, _ int) {
		row := g.Row(j, 0)
		for i := range row {
			row[i] = spec.At2D(src, float32(i), float32(j))
		}
	})
	return g, nil
}

// Sample3D fills a Width x Height x Depth grid, one row per task.
func Sample3D(src Source, spec Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := New(spec.Width, spec.Height, spec.Depth)
	parallel.For(spec.Height*spec.Depth, func(r, _ int) {
		j, k := r%spec.Height, r/spec.Height
		row := g.Row(j, k)
		for i := range row {
			row[i] = spec.At3D(src, float32(i), float32(j), float32(k))
		}
	})
	return g, nil
}
