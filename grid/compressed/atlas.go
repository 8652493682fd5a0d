// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"sync"
	"sync/atomic"

	"github.com/SoftbearStudios/simplex/grid"
)

// Size is the width and height of an Atlas, which is centered on the origin.
const Size = 2048

// Atlas is a lazily generated, compressed view of a Size x Size window of a noise
// plane. Chunks are generated on first access and kept until the Atlas is dropped.
// All of its methods can be called concurrently.
type Atlas struct {
	src        grid.Source
	spec       grid.Spec
	chunks     [Size / chunkSize][Size / chunkSize]atomic.Pointer[chunk]
	chunkCount int32
	mutex      sync.Mutex
}

// NewAtlas samples src the way spec.At2D does. Only spec's Width and Height
// (the tile size when tiling) are used from its dimensions.
func NewAtlas(src grid.Source, spec grid.Spec) *Atlas {
	return &Atlas{
		src:  src,
		spec: spec,
	}
}

// Clamp limits a region to the bounds of the atlas. The returned width or height
// is 0 if the region lies entirely outside.
func (a *Atlas) Clamp(x, y, width, height int) (int, int, int, int) {
	minX, minY := a.start()
	maxX, maxY := a.end()

	x2 := minInt(maxInt(x+width, minX), maxX)
	y2 := minInt(maxInt(y+height, minY), maxY)
	x = minInt(maxInt(x, minX), maxX)
	y = minInt(maxInt(y, minY), maxY)

	return x, y, x2 - x, y2 - y
}

// At returns a compressed copy of a region, clamped to the atlas.
func (a *Atlas) At(x, y, width, height int) *Raster {
	x, y, width, height = a.Clamp(x, y, width, height)

	r := NewRaster()
	buffer := Buffer{
		buf: r.Data,
	}
	buffer.Grow(width * height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			buffer.writeByte(a.at(x+i, y+j))
		}
	}

	r.X = x
	r.Y = y
	r.Width = width
	r.Height = height
	r.Data = buffer.Bytes()

	return r
}

// AtPos samples the atlas bilinearly. Positions outside the atlas read as 0.
func (a *Atlas) AtPos(x, y float32) byte {
	fx, fy := floor(x), floor(y)
	tx, ty := x-float32(fx), y-float32(fy)

	// Sample 4x4 grid
	// 00 10
	// 01 11
	c00 := a.at2(fx, fy)
	c10 := a.at2(fx+1, fy)
	c01 := a.at2(fx, fy+1)
	c11 := a.at2(fx+1, fy+1)

	return blerp(c00, c10, c01, c11, tx, ty)
}

// Len returns the number of chunks generated so far.
func (a *Atlas) Len() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return int(a.chunkCount)
}

func (a *Atlas) at2(x, y int) byte {
	minX, minY := a.start()
	maxX, maxY := a.end()

	if x >= minX && x < maxX && y >= minY && y < maxY {
		return a.at(x, y)
	}
	return 0
}

func (a *Atlas) at(x, y int) byte {
	c := a.getChunk(x+Size/2, y+Size/2)
	return c.at(uint(x&(chunkSize-1)), uint(y&(chunkSize-1)))
}

// X and Y in 0 -> Size coordinates
func (a *Atlas) getChunk(x, y int) *chunk {
	ucx := x / chunkSize
	ucy := y / chunkSize

	// Basically sync.Once for each chunk but with shared mutex
	ptr := &a.chunks[ucx][ucy]
	c := ptr.Load()

	if c == nil {
		a.mutex.Lock()
		defer a.mutex.Unlock()

		// Load again to make sure its still nil after acquiring the lock
		c = ptr.Load()
		if c == nil {
			c = generateChunk(a.src, &a.spec, ucx-Size/chunkSize/2, ucy-Size/chunkSize/2)
			a.chunkCount++
			ptr.Store(c)
		}
	}

	return c
}

// x and y must be >= start
func (a *Atlas) start() (x, y int) {
	x = -Size / 2
	y = -Size / 2
	return
}

// x and y must be < end
func (a *Atlas) end() (x, y int) {
	x = Size / 2
	y = Size / 2
	return
}

func floor(f float32) int {
	i := int(f)
	if f < float32(i) {
		return i - 1
	}
	return i
}
