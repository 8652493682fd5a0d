// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/simplex/grid/compressed"
	"github.com/SoftbearStudios/simplex/preset"
)

type (
	// Error reports an inbound that could not be applied.
	Error struct {
		Message string `json:"message"`
	}

	// Presets lists the names of stored presets.
	Presets struct {
		Names []string `json:"names"`
	}

	// Preview is the compressed preview of the shared noise. It is only sent when
	// the version changes.
	Preview struct {
		Raster  *compressed.Raster `json:"raster"`
		Version uint64             `json:"version"`
	}

	// Saved confirms a SavePreset.
	Saved struct {
		Name string `json:"name"`
	}

	// Status is the shared configuration, sent on connect and after every change.
	Status struct {
		Preset  preset.Preset `json:"preset"`
		Version uint64        `json:"version"`
		Clients int           `json:"clients"`
	}
)

func (e Error) Pool() {}

func (presets Presets) Pool() {}

// Pool returns the raster to its pool.
func (preview *Preview) Pool() {
	if preview.Raster != nil {
		preview.Raster.Pool()
		preview.Raster = nil
	}
}

func (saved Saved) Pool() {}

func (status Status) Pool() {}
