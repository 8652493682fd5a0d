// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

// perm is Ken Perlin's permutation table. Values must not change, or every
// seed produces different output.
var perm = [256]uint8{
	151, 160, 137, 91, 90, 15,
	131, 13, 201, 95, 96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23,
	190, 6, 148, 247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57, 177, 33,
	88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74, 165, 71, 134, 139, 48, 27, 166,
	77, 146, 158, 231, 83, 111, 229, 122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244,
	102, 143, 54, 65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169, 200, 196,
	135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64, 52, 217, 226, 250, 124, 123,
	5, 202, 38, 147, 118, 126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42,
	223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228,
	251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14, 239, 107,
	49, 192, 214, 31, 181, 199, 106, 157, 184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254,
	138, 236, 205, 93, 222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// hash maps a lattice index and seed to a permutation table entry.
// Works on the unsigned bit pattern, so negative indices are fine.
func hash(i, seed int32) uint8 {
	h := uint32(i) ^ uint32(seed)
	h = h*747796405 + 2891336453 // PCG constants
	h ^= h >> 16
	h ^= h >> 8
	return perm[h&0xff]
}

func hash2(i, j, seed int32) uint8 {
	return hash(i+int32(hash(j, seed)), seed)
}

func hash3(i, j, k, seed int32) uint8 {
	return hash(i+int32(hash(j+int32(hash(k, seed)), seed)), seed)
}

// grad1 picks one of 16 gradients (±1..±8) and multiplies it with x.
func grad1(h uint8, x float32) float32 {
	h &= 0x0f
	g := 1 + float32(h&7)
	if h&8 != 0 {
		g = -g
	}
	return g * x
}

// grad2 returns the dot product of one of 8 gradients ((±1,±2) or (±2,±1)) with (x, y).
func grad2(h uint8, x, y float32) float32 {
	gx, gy := warpGrad2(h, x, y)
	return gx + gy
}

// grad3 returns the dot product of one of 12 cube edge gradients with (x, y, z).
func grad3(h uint8, x, y, z float32) float32 {
	h &= 0x0f
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// warpGrad2 is grad2 without the final sum. Its components are the warp direction
// of a corner.
func warpGrad2(h uint8, x, y float32) (float32, float32) {
	h &= 0x3f
	u, v := y, x
	if h < 4 {
		u, v = x, y
	}
	if h&1 != 0 {
		u = -u
	}
	v *= 2
	if h&2 != 0 {
		v = -v
	}
	return u, v
}

// warpGrad3 is the 3D warp direction of a corner. The z component is only
// populated for the upper half of the gradient set.
func warpGrad3(h uint8, x, y, z float32) (wx, wy, wz float32) {
	h &= 0x0f
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}

	wx, wy = u, v
	if h&1 != 0 {
		wx = -wx
	}
	if h&2 != 0 {
		wy = -wy
	}

	if h >= 8 {
		if h&1 == 0 {
			// 8, 10, 12, 14
			wz = x
		} else {
			wz = y
			if h&2 != 0 {
				wz = -wz
			}
		}
	}
	return
}
