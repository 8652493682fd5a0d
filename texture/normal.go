// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// flatNormal is the color of a normal pointing straight out of the surface.
var flatNormal = color.RGBA{R: 127, G: 127, B: 255, A: 255}

// NormalMap treats the red channel of img as height and returns the tangent space
// normals, scaled by bumpStrength, encoded as colors. Border pixels copy their
// inner neighbours; images narrower than 3 pixels are flat.
func NormalMap(img image.Image, bumpStrength float32) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, width, height))

	if width < 3 || height < 3 {
		for i := 0; i < len(out.Pix); i += 4 {
			out.Pix[i+0] = flatNormal.R
			out.Pix[i+1] = flatNormal.G
			out.Pix[i+2] = flatNormal.B
			out.Pix[i+3] = flatNormal.A
		}
		return out
	}

	heights := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			heights[x+y*width] = float32(r) * (1.0 / 0xffff)
		}
	}
	h := func(x, y int) float32 {
		return heights[x+y*width]
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			dx := (h(x+1, y) - h(x-1, y)) * bumpStrength
			dy := (h(x, y+1) - h(x, y-1)) * bumpStrength

			normal := mgl32.Vec3{-dx, -dy, 1}.Normalize()
			out.SetRGBA(x, y, normalColor(normal))
		}
	}

	// Edges
	for x := 1; x < width-1; x++ {
		out.SetRGBA(x, 0, out.RGBAAt(x, 1))
		out.SetRGBA(x, height-1, out.RGBAAt(x, height-2))
	}
	for y := 1; y < height-1; y++ {
		out.SetRGBA(0, y, out.RGBAAt(1, y))
		out.SetRGBA(width-1, y, out.RGBAAt(width-2, y))
	}

	// Corners
	out.SetRGBA(0, 0, out.RGBAAt(1, 1))
	out.SetRGBA(width-1, 0, out.RGBAAt(width-2, 1))
	out.SetRGBA(0, height-1, out.RGBAAt(1, height-2))
	out.SetRGBA(width-1, height-1, out.RGBAAt(width-2, height-2))

	return out
}

// normalColor maps each component of a unit vector from [-1, 1] to [0, 255].
func normalColor(normal mgl32.Vec3) color.RGBA {
	c := normal.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5})
	return color.RGBA{R: floatToByte(c[0]), G: floatToByte(c[1]), B: floatToByte(c[2]), A: 255}
}
