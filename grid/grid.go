// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"errors"
	"fmt"
	"sync"
)

// Source generates noise values at continuous coordinates.
// Implementations must be safe to call from multiple goroutines.
type Source interface {
	Sample1D(x float32) float32
	Sample2D(x, y float32) float32
	Sample3D(x, y, z float32) float32
}

// Tiling selects how (and whether) a grid wraps around at its edges.
type Tiling uint8

const (
	TilingNone Tiling = iota
	// TilingBlend blends shifted copies of the grid near its far edges.
	TilingBlend
	// TilingTorus maps 2D grids onto a torus. 1D and 3D grids fall back to TilingBlend.
	TilingTorus
	tilingCount
)

var tilingNames = [...]string{
	TilingNone:  "none",
	TilingBlend: "blend",
	TilingTorus: "torus",
}

func (t Tiling) String() string {
	if t >= tilingCount {
		return fmt.Sprintf("Tiling(%d)", uint8(t))
	}
	return tilingNames[t]
}

func (t Tiling) MarshalText() ([]byte, error) {
	if t >= tilingCount {
		return nil, fmt.Errorf("invalid tiling %d", uint8(t))
	}
	return []byte(tilingNames[t]), nil
}

func (t *Tiling) UnmarshalText(text []byte) error {
	for i, name := range tilingNames {
		if name == string(text) {
			*t = Tiling(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tiling %q", text)
}

// MaxSkirt is the widest seamless blend, covering the whole tile.
const MaxSkirt = 0.5

var ErrInvalidSize = errors.New("grid dimensions must be at least 1")

// Spec describes a grid to be sampled.
type Spec struct {
	Width, Height, Depth int

	Invert    bool
	Normalize bool // map [-1, 1] to [0, 1] before inverting

	// In3DSpace samples a 2D grid as the plane z = Slice of 3D noise.
	In3DSpace bool
	Slice     float32

	Tiling Tiling
	Skirt  float32 // fraction of the tile, clamped to [0, MaxSkirt]
}

// Validate rejects dimensions the sampler cannot produce. Unused dimensions
// (Height of a 1D grid, Depth of a 2D grid) must still be at least 1.
func (spec *Spec) Validate() error {
	if spec.Width < 1 || spec.Height < 1 || spec.Depth < 1 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrInvalidSize, spec.Width, spec.Height, spec.Depth)
	}
	return nil
}

func (spec *Spec) skirt() float32 {
	return clamp(spec.Skirt, 0, MaxSkirt)
}

// post applies normalization, inversion and clamping to a raw noise value.
func (spec *Spec) post(n float32) float32 {
	if spec.Normalize {
		n = (n + 1) * 0.5
	}
	if spec.Invert {
		n = 1 - n
	}
	return clamp(n, 0, 1)
}

// Grid is a dense block of values in [0, 1], x fastest then y then z.
type Grid struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Depth  int       `json:"depth"`
	Values []float32 `json:"values"`
}

var gridPool = sync.Pool{
	New: func() interface{} {
		return &Grid{
			Values: make([]float32, 0, 256*256),
		}
	},
}

// New returns a zeroed grid, possibly reusing a pooled one.
func New(width, height, depth int) *Grid {
	g := gridPool.Get().(*Grid)
	g.Width = width
	g.Height = height
	g.Depth = depth

	n := width * height * depth
	if cap(g.Values) < n {
		g.Values = make([]float32, n)
	} else {
		g.Values = g.Values[:n]
		for i := range g.Values {
			g.Values[i] = 0
		}
	}
	return g
}

// Pool returns g to the pool. g must not be used afterwards.
func (g *Grid) Pool() {
	*g = Grid{
		Values: g.Values[:0],
	}
	gridPool.Put(g)
}

func (g *Grid) index(x, y, z int) int {
	return x + (y+z*g.Height)*g.Width
}

func (g *Grid) At(x, y, z int) float32 {
	return g.Values[g.index(x, y, z)]
}

// Row returns the values of row y of slice z, aliasing g.Values.
func (g *Grid) Row(y, z int) []float32 {
	i := g.index(0, y, z)
	return g.Values[i : i+g.Width]
}

// Bytes quantizes every value to 8 bits.
func (g *Grid) Bytes() []byte {
	buf := make([]byte, len(g.Values))
	for i, v := range g.Values {
		buf[i] = floatToByte(v)
	}
	return buf
}
