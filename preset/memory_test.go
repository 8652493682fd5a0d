// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import (
	"sync"
	"testing"
)

func TestMemoryDatabase(t *testing.T) {
	var db Database = NewMemoryDatabase()

	if _, err := db.ReadPreset("Islands"); err != ErrNotFound {
		t.Fatalf("expected %v, got %v", ErrNotFound, err)
	}

	p := testPreset()
	if err := db.CreatePreset(p); err != nil {
		t.Fatal(err)
	}
	if err := db.CreatePreset(p); err != ErrExists {
		t.Errorf("expected %v, got %v", ErrExists, err)
	}

	read, err := db.ReadPreset(p.Name)
	if err != nil {
		t.Fatal(err)
	}
	if read.Updated == 0 {
		t.Error("updated not set")
	}
	read.Updated = 0
	if read != p {
		t.Errorf("expected %+v, got %+v", p, read)
	}

	p.Seed = 9
	if err := db.UpdatePreset(p); err != nil {
		t.Fatal(err)
	}
	if err := db.UpdatePreset(Default("Another")); err != nil {
		t.Fatal(err)
	}

	presets, err := db.ReadPresets()
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 2 || presets[0].Name != "Another" || presets[1].Seed != 9 {
		t.Errorf("unexpected presets %+v", presets)
	}

	if err := db.DeletePreset("Another"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ReadPreset("Another"); err != ErrNotFound {
		t.Errorf("expected %v, got %v", ErrNotFound, err)
	}
}

func TestMemoryDatabase_Clone(t *testing.T) {
	db := NewMemoryDatabase()

	p := Default("Textured")
	p.Texture = &Texture{Width: 64, Height: 64}
	if err := db.UpdatePreset(p); err != nil {
		t.Fatal(err)
	}
	p.Texture.Width = 1

	read, err := db.ReadPreset("Textured")
	if err != nil {
		t.Fatal(err)
	}
	if read.Texture.Width != 64 {
		t.Errorf("stored preset was mutated: width %d", read.Texture.Width)
	}
}

func TestMemoryDatabase_Concurrent(t *testing.T) {
	db := NewMemoryDatabase()

	var wait sync.WaitGroup
	for i := 0; i < 8; i++ {
		wait.Add(1)
		go func(i int) {
			defer wait.Done()
			p := Default("Shared")
			p.Seed = int32(i)
			for j := 0; j < 100; j++ {
				_ = db.UpdatePreset(p)
				_, _ = db.ReadPresets()
			}
		}(i)
	}
	wait.Wait()

	presets, _ := db.ReadPresets()
	if len(presets) != 1 {
		t.Errorf("expected 1 preset, got %d", len(presets))
	}
}
