// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import "github.com/chewxy/math32"

// blendWeight is the weight given to the copy shifted back one tile, at fraction t
// across the tile. It is 0 until the skirt starts and reaches exactly 1 at t = 1, so
// the value at the far edge equals the value at the near edge.
func blendWeight(t, skirt float32) float32 {
	return smoothstep(1-2*skirt, 1, t)
}

// SeamlessAt1D returns raw noise at x that repeats every width.
func SeamlessAt1D(src Source, width, skirt, x float32) float32 {
	w := blendWeight(x/width, skirt)
	return lerp(src.Sample1D(x), src.Sample1D(x-width), w)
}

// SeamlessAt2D returns raw noise at (x, y) that repeats every width and height, by
// blending four copies of the source shifted by zero or one tile along each axis.
func SeamlessAt2D(src Source, width, height, skirt, x, y float32) float32 {
	wx := blendWeight(x/width, skirt)
	wy := blendWeight(y/height, skirt)

	near := lerp(src.Sample2D(x, y), src.Sample2D(x-width, y), wx)
	far := lerp(src.Sample2D(x, y-height), src.Sample2D(x-width, y-height), wx)
	return lerp(near, far, wy)
}

// SeamlessAt3D is SeamlessAt2D with eight copies.
func SeamlessAt3D(src Source, width, height, depth, skirt, x, y, z float32) float32 {
	wx := blendWeight(x/width, skirt)
	wy := blendWeight(y/height, skirt)
	wz := blendWeight(z/depth, skirt)

	var planes [2]float32
	for k := range planes {
		sz := z - float32(k)*depth
		near := lerp(src.Sample3D(x, y, sz), src.Sample3D(x-width, y, sz), wx)
		far := lerp(src.Sample3D(x, y-height, sz), src.Sample3D(x-width, y-height, sz), wx)
		planes[k] = lerp(near, far, wy)
	}
	return lerp(planes[0], planes[1], wz)
}

// Offset of the second torus sample, far enough away to be uncorrelated with the first.
const torusOffset = 1024

// TorusAt2D returns raw noise at (x, y) that repeats every width and height. Each axis
// is wrapped onto a circle whose circumference is the tile size, so features keep
// their size, and the two samples of torusSamples are averaged.
//
// Each sample reads only three of the four circle coordinates, so each is mirrored
// within the tile: the first about y = height/2, the second about x = width/4. The
// offset between them keeps the average from being mirrored.
func TorusAt2D(src Source, width, height, x, y float32) float32 {
	a, b := torusSamples(src, width, height, x, y)
	return (a + b) * 0.5
}

func torusSamples(src Source, width, height, x, y float32) (a, b float32) {
	const tau = 2 * math32.Pi

	rx := width / tau
	ry := height / tau
	sa, ca := math32.Sincos(x / width * tau)
	sb, cb := math32.Sincos(y / height * tau)

	a = src.Sample3D(ca*rx, sa*rx, cb*ry)
	b = src.Sample3D(cb*ry+torusOffset, sb*ry+torusOffset, sa*rx)
	return
}

// slice samples the plane z of a 3D source as a 2D source.
type slice struct {
	Source
	z float32
}

func (s slice) Sample2D(x, y float32) float32 {
	return s.Source.Sample3D(x, y, s.z)
}
