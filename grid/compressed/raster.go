// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"errors"
	"image"
	"sync"

	"github.com/SoftbearStudios/simplex/grid"
)

var ErrCorrupt = errors.New("compressed raster is shorter than its dimensions")

// Raster is a grayscale image, possibly a window into a larger plane, stored as
// nibble run length encoded Data (see Buffer).
type Raster struct {
	X      int    `json:"x"`      // X is the column of the first value within its plane.
	Y      int    `json:"y"`      // Y is the row of the first value within its plane.
	Width  int    `json:"width"`  // Width is the stride of the decoded data.
	Height int    `json:"height"` // Height is the number of rows.
	Data   []byte `json:"data"`
}

var rasterPool = sync.Pool{
	New: func() interface{} {
		return &Raster{
			Data: make([]byte, 0, 2048),
		}
	},
}

func NewRaster() *Raster {
	return rasterPool.Get().(*Raster)
}

func (r *Raster) Pool() {
	*r = Raster{
		Data: r.Data[:0],
	}
	rasterPool.Put(r)
}

// Compress encodes slice z of g to 4 bits per value.
func Compress(g *grid.Grid, z int) *Raster {
	r := NewRaster()
	r.Width = g.Width
	r.Height = g.Height

	buffer := Buffer{buf: r.Data}
	buffer.Grow(g.Width * g.Height)
	for j := 0; j < g.Height; j++ {
		for _, v := range g.Row(j, z) {
			buffer.writeByte(floatToByte(v))
		}
	}

	r.Data = buffer.Bytes()
	return r
}

// Decode returns the values row by row, each rounded to 4 bits.
func (r *Raster) Decode() ([]byte, error) {
	buf := make([]byte, r.Width*r.Height)

	var buffer Buffer
	buffer.Reset(r.Data)
	if n, _ := buffer.Read(buf); n != len(buf) {
		return nil, ErrCorrupt
	}
	return buf, nil
}

func (r *Raster) Image() (*image.Gray, error) {
	buf, err := r.Decode()
	if err != nil {
		return nil, err
	}

	return &image.Gray{
		Pix:    buf,
		Stride: r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}, nil
}

// Scale decodes r and resamples it bilinearly to width x height.
func (r *Raster) Scale(width, height int) (*image.Gray, error) {
	buf, err := r.Decode()
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	if len(buf) == 0 {
		return img, nil
	}

	sx := float32(r.Width-1) / float32(maxInt(width-1, 1))
	sy := float32(r.Height-1) / float32(maxInt(height-1, 1))

	for j := 0; j < height; j++ {
		fy := float32(j) * sy
		y0 := int(fy)
		y1 := minInt(y0+1, r.Height-1)

		for i := 0; i < width; i++ {
			fx := float32(i) * sx
			x0 := int(fx)
			x1 := minInt(x0+1, r.Width-1)

			img.Pix[i+j*img.Stride] = blerp(
				buf[x0+y0*r.Width], buf[x1+y0*r.Width],
				buf[x0+y1*r.Width], buf[x1+y1*r.Width],
				fx-float32(x0), fy-float32(y0),
			)
		}
	}

	return img, nil
}
