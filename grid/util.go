// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

func clamp(f, minimum, maximum float32) float32 {
	if f < minimum {
		return minimum
	}
	if f > maximum {
		return maximum
	}
	return f
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}

func lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

// smoothstep is the cubic Hermite step from edge0 to edge1. With edge0 == edge1 it is
// a hard step at the edge.
func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
