// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image"

	"github.com/disintegration/imaging"
)

// Mipmaps returns the box filtered chain below img, each level half the size of
// the previous one (rounding down, at least 1), ending at 1x1. img itself is not
// included.
func Mipmaps(img image.Image) []image.Image {
	var levels []image.Image

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	for width > 1 || height > 1 {
		width = maxInt(width/2, 1)
		height = maxInt(height/2, 1)

		img = imaging.Resize(img, width, height, imaging.Box)
		levels = append(levels, img)
	}

	return levels
}
