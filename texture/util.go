// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

// clamp maps NaN to minimum.
func clamp(f, minimum, maximum float32) float32 {
	if !(f >= minimum) {
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

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
