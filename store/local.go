// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrPath = errors.New("file name escapes the directory")

// LocalFilesystem writes files under a directory. Cache lifetimes are ignored.
type LocalFilesystem struct {
	dir string
}

func NewLocalFilesystem(dir string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFilesystem{dir: dir}, nil
}

func (local *LocalFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	path, err := local.path(filename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Write then rename so readers never see a partial file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	return nil
}

func (local *LocalFilesystem) path(filename string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash("/" + filename))
	path := filepath.Join(local.dir, clean)
	if rel, err := filepath.Rel(local.dir, path); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%q: %w", filename, ErrPath)
	}
	return path, nil
}
