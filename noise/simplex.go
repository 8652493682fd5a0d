// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

// Skew/unskew factors of the simplex lattice.
const (
	f2 = 0.366025403 // (sqrt(3) - 1) / 2
	g2 = 0.211324865 // (3 - sqrt(3)) / 6
	f3 = float32(1.0 / 3.0)
	g3 = float32(1.0 / 6.0)
)

// Empirical factors that scale each dimension's output to about [-1, 1].
const (
	scale1 = 0.395
	scale2 = 45.23065
	scale3 = 32.0
)

// Squared radius beyond which a corner contributes nothing.
const (
	falloff2 = 0.5
	falloff3 = 0.6
)

// Noise1D returns simplex noise in [-1, 1]. It is zero at every integer x.
func Noise1D(x float32, seed int32) float32 {
	i0 := fastFloor(x)
	i1 := i0 + 1
	x0 := x - float32(i0)
	x1 := x0 - 1

	t0 := 1 - x0*x0
	t0 *= t0
	n0 := t0 * t0 * grad1(hash(i0, seed), x0)

	t1 := 1 - x1*x1
	t1 *= t1
	n1 := t1 * t1 * grad1(hash(i1, seed), x1)

	return scale1 * (n0 + n1)
}

// Noise2D returns simplex noise in [-1, 1].
func Noise2D(x, y float32, seed int32) float32 {
	c := simplex2(x, y)

	var n float32
	for k := range c.x {
		t := falloff2 - c.x[k]*c.x[k] - c.y[k]*c.y[k]
		if t < 0 {
			continue
		}
		t *= t
		n += t * t * grad2(hash2(c.i+c.di[k], c.j+c.dj[k], seed), c.x[k], c.y[k])
	}
	return scale2 * n
}

// Noise3D returns simplex noise in [-1, 1].
func Noise3D(x, y, z float32, seed int32) float32 {
	c := simplex3(x, y, z)

	var n float32
	for k := range c.x {
		t := falloff3 - c.x[k]*c.x[k] - c.y[k]*c.y[k] - c.z[k]*c.z[k]
		if t < 0 {
			continue
		}
		t *= t
		n += t * t * grad3(hash3(c.i+c.di[k], c.j+c.dj[k], c.k+c.dk[k], seed), c.x[k], c.y[k], c.z[k])
	}
	return scale3 * n
}

// cell2 is the triangle containing a 2D point: its origin in lattice space, the lattice
// offsets of its three corners and the point's offset from each corner.
type cell2 struct {
	i, j   int32
	di, dj [3]int32
	x, y   [3]float32
}

func simplex2(x, y float32) (c cell2) {
	s := (x + y) * f2
	c.i = fastFloor(x + s)
	c.j = fastFloor(y + s)

	t := float32(c.i+c.j) * g2
	x0 := x - (float32(c.i) - t)
	y0 := y - (float32(c.j) - t)

	// Lower triangle (0,0)->(1,0)->(1,1) or upper triangle (0,0)->(0,1)->(1,1).
	var i1, j1 int32
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	c.di = [3]int32{0, i1, 1}
	c.dj = [3]int32{0, j1, 1}
	c.x = [3]float32{x0, x0 - float32(i1) + g2, x0 - 1 + 2*g2}
	c.y = [3]float32{y0, y0 - float32(j1) + g2, y0 - 1 + 2*g2}
	return
}

// cell3 is the tetrahedron containing a 3D point.
type cell3 struct {
	i, j, k    int32
	di, dj, dk [4]int32
	x, y, z    [4]float32
}

func simplex3(x, y, z float32) (c cell3) {
	s := (x + y + z) * f3
	c.i = fastFloor(x + s)
	c.j = fastFloor(y + s)
	c.k = fastFloor(z + s)

	t := float32(c.i+c.j+c.k) * g3
	x0 := x - (float32(c.i) - t)
	y0 := y - (float32(c.j) - t)
	z0 := z - (float32(c.k) - t)

	// Traversal order of the second and third corners.
	var i1, j1, k1, i2, j2, k2 int32
	if x0 >= y0 {
		switch {
		case y0 >= z0: // XYZ
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0: // XZY
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default: // ZXY
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0: // ZYX
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0: // YZX
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default: // YXZ
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	c.di = [4]int32{0, i1, i2, 1}
	c.dj = [4]int32{0, j1, j2, 1}
	c.dk = [4]int32{0, k1, k2, 1}
	c.x = [4]float32{x0, x0 - float32(i1) + g3, x0 - float32(i2) + 2*g3, x0 - 1 + 3*g3}
	c.y = [4]float32{y0, y0 - float32(j1) + g3, y0 - float32(j2) + 2*g3, y0 - 1 + 3*g3}
	c.z = [4]float32{z0, z0 - float32(k1) + g3, z0 - float32(k2) + 2*g3, z0 - 1 + 3*g3}
	return
}
