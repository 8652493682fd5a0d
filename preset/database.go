// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

// Database stores presets by name. ReadPreset returns ErrNotFound for unknown names.
type Database interface {
	UpdatePreset(preset Preset) error
	CreatePreset(preset Preset) error
	ReadPreset(name string) (Preset, error)
	ReadPresets() (presets []Preset, err error)
	DeletePreset(name string) error
}
