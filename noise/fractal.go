// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "github.com/chewxy/math32"

// FBM1D sums octaves of noise, each at Lacunarity times the frequency and Gain times
// the amplitude of the previous one, and divides by the total amplitude.
func (c *Config) FBM1D(x float32) float32 {
	var output, denom float32
	frequency := c.Frequency
	amplitude := float32(1)

	for i := uint16(0); i < c.Octaves; i++ {
		output += amplitude * Noise1D(x*frequency, c.Seed)
		denom += amplitude

		frequency *= c.Lacunarity
		amplitude *= c.Gain
	}

	return output / denom
}

func (c *Config) FBM2D(x, y float32) float32 {
	var output, denom float32
	frequency := c.Frequency
	amplitude := float32(1)

	for i := uint16(0); i < c.Octaves; i++ {
		output += amplitude * Noise2D(x*frequency, y*frequency, c.Seed)
		denom += amplitude

		frequency *= c.Lacunarity
		amplitude *= c.Gain
	}

	return output / denom
}

func (c *Config) FBM3D(x, y, z float32) float32 {
	var output, denom float32
	frequency := c.Frequency
	amplitude := float32(1)

	for i := uint16(0); i < c.Octaves; i++ {
		output += amplitude * Noise3D(x*frequency, y*frequency, z*frequency, c.Seed)
		denom += amplitude

		frequency *= c.Lacunarity
		amplitude *= c.Gain
	}

	return output / denom
}

// ridge folds |n| into a peak at n = 0.
func ridge(n float32) float32 {
	return math32.Abs(n)*-2 + 1
}

// Ridged1D sums folded octaves. Amplitudes start at FractalBounding so the result
// stays within [-1, 1].
func (c *Config) Ridged1D(x float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += ridge(Noise1D(x*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}

func (c *Config) Ridged2D(x, y float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += ridge(Noise2D(x*c.Frequency, y*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		y *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}

func (c *Config) Ridged3D(x, y, z float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += ridge(Noise3D(x*c.Frequency, y*c.Frequency, z*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		y *= c.Lacunarity
		z *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}

// bounce maps an octave of noise to [-1, 1] through the ping pong fold.
func (c *Config) bounce(n float32) float32 {
	return (pingPong((n+1)*c.PingPongStrength) - 0.5) * 2
}

// PingPong1D sums octaves of noise folded back and forth PingPongStrength times.
func (c *Config) PingPong1D(x float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += c.bounce(Noise1D(x*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}

func (c *Config) PingPong2D(x, y float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += c.bounce(Noise2D(x*c.Frequency, y*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		y *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}

func (c *Config) PingPong3D(x, y, z float32) float32 {
	var sum float32
	amp := FractalBounding(c.Gain, c.Octaves)

	for i := uint16(0); i < c.Octaves; i++ {
		sum += c.bounce(Noise3D(x*c.Frequency, y*c.Frequency, z*c.Frequency, c.Seed)) * amp

		x *= c.Lacunarity
		y *= c.Lacunarity
		z *= c.Lacunarity
		amp *= c.Gain
	}

	return sum
}
