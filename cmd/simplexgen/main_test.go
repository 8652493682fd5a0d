// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()

	presetPath := filepath.Join(dir, "hills.json")
	err := os.WriteFile(presetPath, []byte(`{"seed": 3, "fractal_type": "ridged", "texture": {"width": 16, "height": 8, "normalize": true}}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	a := &args{
		presetPath: presetPath,
		output:     filepath.Join(dir, "hills.png"),
		mipmaps:    true,
		set:        map[string]bool{"mipmaps": true},
	}
	if err := run(a); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(filepath.Join(dir, "hills.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	config, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	if config.Width != 16 || config.Height != 8 {
		t.Errorf("expected 16x8, got %dx%d", config.Width, config.Height)
	}

	// 8x4, 4x2, 2x1 and 1x1.
	for _, name := range []string{"hills_1.png", "hills_4.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "hills_5.png")); err == nil {
		t.Error("unexpected fifth mipmap")
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	a := &args{output: filepath.Join(t.TempDir(), "out.gif"), set: map[string]bool{}}
	if err := run(a); err == nil {
		t.Error("expected error")
	}
}

func TestLoadPreset(t *testing.T) {
	p, err := loadPreset("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Generator() != noise.NewDefault() || p.Texture != nil {
		t.Errorf("unexpected default preset %+v", p)
	}

	path := filepath.Join(t.TempDir(), "Dunes.json")
	if err := os.WriteFile(path, []byte(`{"octaves": 2}`), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = loadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Dunes" || p.Octaves != 2 {
		t.Errorf("unexpected preset %+v", p)
	}
}

func TestArgs_Apply(t *testing.T) {
	p := preset.Default("x")
	a := &args{
		seed:     -7,
		width:    64,
		ramp:     "0:#000000,1:#ff0000",
		seamless: true,
		tiling:   grid.TilingTorus,
		set: map[string]bool{
			"seed":     true,
			"width":    true,
			"ramp":     true,
			"seamless": true,
			"tiling":   true,
		},
	}
	if err := a.apply(&p); err != nil {
		t.Fatal(err)
	}

	if p.Seed != -7 || p.Texture.Width != 64 || !p.Texture.Seamless || p.Texture.SeamlessTiling != grid.TilingTorus {
		t.Errorf("flags not applied: %+v %+v", p, *p.Texture)
	}
	if p.Texture.GenerateMipmaps {
		t.Error("mipmaps should be off by default")
	}
	if p.Texture.ColorRamp == "" {
		t.Error("ramp not applied")
	}

	a = &args{ramp: "oops", set: map[string]bool{"ramp": true}}
	if err := a.apply(&p); err == nil {
		t.Error("expected ramp error")
	}
}
