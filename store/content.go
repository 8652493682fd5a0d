// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"strings"

	"github.com/SoftbearStudios/simplex/texture"
)

var contentTypes = func() map[string]string {
	types := map[string]string{
		".json": "application/json",
		".tif":  texture.FormatTIFF.ContentType(),
	}
	for _, format := range []texture.Format{
		texture.FormatPNG,
		texture.FormatBMP,
		texture.FormatTIFF,
		texture.FormatQOI,
		texture.FormatPPM,
	} {
		types[format.Ext()] = format.ContentType()
	}
	return types
}()

// ContentType guesses a content type from the filename's extension, or returns
// the empty string.
func ContentType(filename string) string {
	for ext, mime := range contentTypes {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return mime
		}
	}
	return ""
}
