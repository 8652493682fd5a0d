// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/lmittmann/ppm"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func uniformGray(width, height int, v byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestNormalMap_Flat(t *testing.T) {
	for _, size := range []int{2, 8} {
		normals := NormalMap(uniformGray(size, size, 100), 8)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if c := normals.RGBAAt(x, y); c != flatNormal {
					t.Errorf("%dx%d: (%d, %d) expected %v, got %v", size, size, x, y, flatNormal, c)
				}
			}
		}
	}
}

func TestNormalMap_Slope(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: byte(x * 20)})
		}
	}

	normals := NormalMap(img, 4)

	c := normals.RGBAAt(3, 3)
	if c.R >= flatNormal.R || c.G != flatNormal.G || c.B >= flatNormal.B {
		t.Errorf("slope normal expected to lean towards -x, got %v", c)
	}

	// Uniform slope gives the same normal everywhere, edges included.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if other := normals.RGBAAt(x, y); other != c {
				t.Errorf("(%d, %d) expected %v, got %v", x, y, c, other)
			}
		}
	}
}

func TestMipmaps(t *testing.T) {
	levels := Mipmaps(uniformGray(8, 4, 100))

	sizes := []image.Point{{4, 2}, {2, 1}, {1, 1}}
	if len(levels) != len(sizes) {
		t.Fatalf("expected %d levels, got %d", len(sizes), len(levels))
	}
	for i, level := range levels {
		if size := level.Bounds().Size(); size != sizes[i] {
			t.Errorf("level %d expected %v, got %v", i, sizes[i], size)
		}
	}

	r, _, _, _ := levels[2].At(0, 0).RGBA()
	if v := r >> 8; v < 99 || v > 101 {
		t.Errorf("1x1 level expected about 100, got %d", v)
	}

	if levels := Mipmaps(uniformGray(1, 1, 0)); len(levels) != 0 {
		t.Errorf("1x1 image expected no levels, got %d", len(levels))
	}
}

func TestEncode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: byte(x * 60), G: byte(y * 100), B: byte(x * y * 20), A: 255})
		}
	}

	decoders := map[Format]func(io.Reader) (image.Image, error){
		FormatPNG:  png.Decode,
		FormatBMP:  bmp.Decode,
		FormatTIFF: tiff.Decode,
		FormatQOI:  qoi.Decode,
		FormatPPM:  ppm.Decode,
	}

	for format, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Errorf("%s: %v", format, err)
			continue
		}

		decoded, err := decode(&buf)
		if err != nil {
			t.Errorf("%s: decode: %v", format, err)
			continue
		}

		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				r1, g1, b1, _ := img.At(x, y).RGBA()
				r2, g2, b2, _ := decoded.At(x, y).RGBA()
				if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
					t.Errorf("%s: (%d, %d) expected %v, got %v", format, x, y, img.At(x, y), decoded.At(x, y))
				}
			}
		}
	}

	// Gray images are converted for formats that only write color.
	var buf bytes.Buffer
	if err := Encode(&buf, uniformGray(2, 2, 7), FormatPPM); err != nil {
		t.Error("ppm gray:", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in  string
		out Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{".bmp", FormatBMP},
		{"tif", FormatTIFF},
		{"tiff", FormatTIFF},
		{"qoi", FormatQOI},
		{"ppm", FormatPPM},
	}

	for _, test := range tests {
		if f, err := ParseFormat(test.in); err != nil || f != test.out {
			t.Errorf("ParseFormat(%q) expected %s, got %s, %v", test.in, test.out, f, err)
		}
	}

	if _, err := ParseFormat("jpeg"); err == nil {
		t.Error("expected error for jpeg")
	}
	if f, err := FormatOf("out/noise.qoi"); err != nil || f != FormatQOI {
		t.Errorf("FormatOf expected qoi, got %s, %v", f, err)
	}
	if ct := FormatPNG.ContentType(); ct != "image/png" {
		t.Errorf("ContentType expected image/png, got %s", ct)
	}
}
