// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image"
	"testing"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
)

func testOptions() Options {
	o := DefaultOptions()
	o.Width = 16
	o.Height = 16
	o.Mipmaps = false
	return o
}

func TestTexture_Image(t *testing.T) {
	n := NewNoise(noise.NewDefault())
	tex := New(n, testOptions())

	if !tex.Dirty() {
		t.Error("new texture should be dirty")
	}

	img, err := tex.Image()
	if err != nil {
		t.Fatal(err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	if size := gray.Bounds().Size(); size.X != 16 || size.Y != 16 {
		t.Fatalf("expected 16x16, got %v", size)
	}
	if tex.Dirty() {
		t.Error("texture dirty after Image")
	}

	values, err := grid.Sample2D(n.Generator(), testOptions().Spec())
	if err != nil {
		t.Fatal(err)
	}
	want := values.Bytes()
	for i := range want {
		if gray.Pix[i] != want[i] {
			t.Fatalf("pixel %d expected %d, got %d", i, want[i], gray.Pix[i])
		}
	}

	// Changing the noise invalidates the image.
	n.SetSeed(12)
	if !tex.Dirty() {
		t.Error("texture not dirty after noise change")
	}
	changed, err := tex.Image()
	if err != nil {
		t.Fatal(err)
	}
	if changed == img {
		t.Error("image not regenerated")
	}
}

func TestTexture_Options(t *testing.T) {
	tex := New(NewNoise(noise.NewDefault()), testOptions())

	calls := 0
	tex.OnChange(func() { calls++ })

	tex.SetWidth(0)
	tex.SetHeight(-5)
	tex.SetSeamlessBlendSkirt(2)
	tex.SetSeamless(true)
	tex.SetInvert(true)
	tex.SetIn3DSpace(true)
	tex.SetNormalize(false)
	tex.SetBumpStrength(2)

	o := tex.Options()
	if o.Width != 1 || o.Height != 1 {
		t.Errorf("size expected 1x1, got %dx%d", o.Width, o.Height)
	}
	if o.Skirt != MaxSkirt {
		t.Errorf("skirt expected %f, got %f", float32(MaxSkirt), o.Skirt)
	}
	if !o.Seamless || !o.Invert || !o.In3DSpace || o.Normalize || o.BumpStrength != 2 {
		t.Errorf("unexpected options %+v", o)
	}
	if calls != 8 {
		t.Errorf("expected 8 change calls, got %d", calls)
	}

	// No change, no call.
	tex.SetInvert(true)
	if calls != 8 {
		t.Errorf("expected 8 change calls, got %d", calls)
	}
}

func TestTexture_RampAndNormalMap(t *testing.T) {
	tex := New(NewNoise(noise.NewDefault()), testOptions())

	tex.SetColorRamp(TerrainRamp())
	img, err := tex.Image()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.RGBA); !ok {
		t.Errorf("ramp expected *image.RGBA, got %T", img)
	}

	tex.SetColorRamp(nil)
	tex.SetNormalMap(true)
	img, err = tex.Image()
	if err != nil {
		t.Fatal(err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("normal map expected *image.RGBA, got %T", img)
	}
	// Normals always point out of the surface.
	for i := 2; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 127 {
			t.Fatalf("normal with negative z at %d: %d", i/4, rgba.Pix[i])
		}
	}
}

func TestTexture_Mipmaps(t *testing.T) {
	tex := New(NewNoise(noise.NewDefault()), testOptions())

	levels, err := tex.Mipmaps()
	if err != nil {
		t.Fatal(err)
	}
	if levels != nil {
		t.Errorf("mipmaps disabled, got %d levels", len(levels))
	}

	tex.SetMipmaps(true)
	levels, err = tex.Mipmaps()
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 4 {
		t.Errorf("16x16 expected 4 levels, got %d", len(levels))
	}
}

func TestTexture_SetNoise(t *testing.T) {
	old := NewNoise(noise.NewDefault())
	tex := New(old, testOptions())

	tex.SetNoise(nil)
	if _, err := tex.Image(); err != ErrNoNoise {
		t.Errorf("expected %v, got %v", ErrNoNoise, err)
	}

	tex.SetNoise(NewNoise(noise.NewDefault()))
	if _, err := tex.Image(); err != nil {
		t.Fatal(err)
	}

	// The previous noise is no longer observed.
	old.SetSeed(3)
	if tex.Dirty() {
		t.Error("texture dirty after change to detached noise")
	}

	if err := tex.Regenerate(); err != nil {
		t.Error(err)
	}
}

func TestRender_Seamless(t *testing.T) {
	g := noise.NewDefault()
	g.Frequency = 0.1

	o := testOptions()
	o.Seamless = true
	o.Tiling = grid.TilingNone

	if spec := o.Spec(); spec.Tiling != grid.TilingBlend {
		t.Errorf("seamless without tiling expected blend, got %s", spec.Tiling)
	}

	if _, err := Render(g, o); err != nil {
		t.Error(err)
	}

	o.Width = 0
	if _, err := Render(g, o); err == nil {
		t.Error("expected error for zero width")
	}
}
