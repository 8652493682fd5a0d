// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import (
	"sort"
	"sync"
	"time"
)

// MemoryDatabase is a Database for tests and single-server deployments.
type MemoryDatabase struct {
	mutex   sync.RWMutex
	presets map[string]Preset
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{presets: make(map[string]Preset)}
}

func (m *MemoryDatabase) UpdatePreset(preset Preset) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	preset.Updated = time.Now().Unix()
	m.presets[preset.Name] = clone(preset)
	return nil
}

func (m *MemoryDatabase) CreatePreset(preset Preset) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.presets[preset.Name]; ok {
		return ErrExists
	}
	preset.Updated = time.Now().Unix()
	m.presets[preset.Name] = clone(preset)
	return nil
}

func (m *MemoryDatabase) ReadPreset(name string) (Preset, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	preset, ok := m.presets[name]
	if !ok {
		return Preset{}, ErrNotFound
	}
	return clone(preset), nil
}

// ReadPresets returns every preset sorted by name.
func (m *MemoryDatabase) ReadPresets() ([]Preset, error) {
	m.mutex.RLock()
	presets := make([]Preset, 0, len(m.presets))
	for _, preset := range m.presets {
		presets = append(presets, clone(preset))
	}
	m.mutex.RUnlock()

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets, nil
}

func (m *MemoryDatabase) DeletePreset(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.presets, name)
	return nil
}

// clone copies the texture settings so callers can't mutate stored presets.
func clone(preset Preset) Preset {
	if preset.Texture != nil {
		texture := *preset.Texture
		preset.Texture = &texture
	}
	return preset
}
