// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "github.com/SoftbearStudios/simplex/grid"

// chunkSize is the width and height of a chunk.
// It must be a power of 2.
const chunkSize = 64

// chunk stores a square of processed noise as nibbles, 16 per word.
// It is never modified after generateChunk returns.
type chunk struct {
	data [chunkSize][chunkSize / 16]uint64
}

// generateChunk samples the chunk whose top left cell is (cx, cy) * chunkSize.
func generateChunk(src grid.Source, spec *grid.Spec, cx, cy int) *chunk {
	c := new(chunk)
	ox := float32(cx * chunkSize)
	oy := float32(cy * chunkSize)

	for j := 0; j < chunkSize; j++ {
		for i := 0; i < chunkSize; i++ {
			v := floatToByte(spec.At2D(src, ox+float32(i), oy+float32(j)))
			c.data[j][i/16] |= uint64(roundByte(v)>>4) << ((i % 16) * 4)
		}
	}

	return c
}

// at gets a relative position in the chunk.
func (c *chunk) at(x, y uint) byte {
	dat := c.data[y][x/16]
	return (byte(dat>>((x%16)*4)) & 0b1111) << 4
}
