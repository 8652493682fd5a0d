// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "github.com/chewxy/math32"

// fastFloor is floor for values that fit in an int32.
func fastFloor(f float32) int32 {
	i := int32(f)
	if f < float32(i) {
		return i - 1
	}
	return i
}

// pingPong folds t into a triangle wave with period 2.
func pingPong(t float32) float32 {
	t -= float32(int32(t*0.5)) * 2
	if t < 1 {
		return t
	}
	return 2 - t
}

// FractalBounding returns the reciprocal of the sum of the amplitudes of octaves
// octaves, each |gain| times the previous one starting at 1.
func FractalBounding(gain float32, octaves uint16) float32 {
	gain = math32.Abs(gain)
	amp := gain
	ampFractal := float32(1)
	for i := uint16(1); i < octaves; i++ {
		ampFractal += amp
		amp *= gain
	}
	return 1 / ampFractal
}
