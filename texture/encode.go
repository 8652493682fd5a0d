// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/lmittmann/ppm"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image file format.
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
	FormatQOI
	FormatPPM
	formatCount
)

var formats = [...]struct {
	name        string
	contentType string
}{
	FormatPNG:  {"png", "image/png"},
	FormatBMP:  {"bmp", "image/bmp"},
	FormatTIFF: {"tiff", "image/tiff"},
	FormatQOI:  {"qoi", "image/qoi"},
	FormatPPM:  {"ppm", "image/x-portable-pixmap"},
}

func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formats[f].name
}

func (f Format) ContentType() string {
	if f >= formatCount {
		return "application/octet-stream"
	}
	return formats[f].contentType
}

// Ext is the file extension, including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts a format name, case insensitively. "tif" is an alias of tiff.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "tif" {
		return FormatTIFF, nil
	}
	for i, f := range formats {
		if f.name == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown image format %q", name)
}

// FormatOf infers a format from a file name's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) MarshalText() ([]byte, error) {
	if f >= formatCount {
		return nil, fmt.Errorf("invalid image format %d", uint8(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatQOI:
		return qoi.Encode(w, img)
	case FormatPPM:
		// ppm only writes RGBA images.
		return ppm.Encode(w, toRGBA(img))
	default:
		return fmt.Errorf("invalid image format %d", uint8(format))
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
