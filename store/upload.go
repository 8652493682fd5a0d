// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/SoftbearStudios/simplex/texture"
)

// UploadImage encodes img and uploads it as name plus the format's extension.
func UploadImage(fs Filesystem, name string, img image.Image, format texture.Format, secondsCache int) (string, error) {
	var buf bytes.Buffer
	if err := texture.Encode(&buf, img, format); err != nil {
		return "", err
	}

	filename := name + format.Ext()
	if err := fs.UploadStaticFile(filename, secondsCache, buf.Bytes()); err != nil {
		return "", err
	}
	return filename, nil
}

// UploadMipmaps uploads each level of a chain from texture.Mipmaps as
// name_<level>. Level 0 is the full size image, so the first is name_1.
func UploadMipmaps(fs Filesystem, name string, levels []image.Image, format texture.Format, secondsCache int) ([]string, error) {
	filenames := make([]string, 0, len(levels))
	for i, level := range levels {
		filename, err := UploadImage(fs, fmt.Sprintf("%s_%d", name, i+1), level, format, secondsCache)
		if err != nil {
			return filenames, err
		}
		filenames = append(filenames, filename)
	}
	return filenames, nil
}

// Key turns a free form preset name into an object key under prefix.
func Key(prefix, name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if name == "" {
		name = "untitled"
	}
	return path.Join(prefix, name)
}
