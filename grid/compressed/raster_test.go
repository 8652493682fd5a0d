// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"testing"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/noise"
)

func testGrid(t *testing.T, width, height int) *grid.Grid {
	src := noise.NewDefault()
	src.Frequency = 0.05

	g, err := grid.Sample2D(src, grid.Spec{Width: width, Height: height, Normalize: true})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRaster_Decode(t *testing.T) {
	g := testGrid(t, 37, 21)
	defer g.Pool()

	r := Compress(g, 0)
	defer r.Pool()

	if r.Width != 37 || r.Height != 21 {
		t.Fatalf("Compress expected 37x21, got %dx%d", r.Width, r.Height)
	}

	buf, err := r.Decode()
	if err != nil {
		t.Fatal(err)
	}
	want := g.Bytes()
	for i := range want {
		if buf[i] != roundByte(want[i]) {
			t.Errorf("value %d expected %d, got %d", i, roundByte(want[i]), buf[i])
		}
	}

	// Decoding twice gives the same result.
	img, err := r.Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.GrayAt(36, 20).Y != buf[len(buf)-1] {
		t.Errorf("Image last pixel expected %d, got %d", buf[len(buf)-1], img.GrayAt(36, 20).Y)
	}
}

func TestRaster_Corrupt(t *testing.T) {
	// One tuple holding one value, where 4x4 needs 16.
	r := &Raster{Width: 4, Height: 4, Data: []byte{0x10}}
	if _, err := r.Decode(); err != ErrCorrupt {
		t.Errorf("expected %v, got %v", ErrCorrupt, err)
	}
}

func TestRaster_Scale(t *testing.T) {
	g := testGrid(t, 16, 16)
	defer g.Pool()

	r := Compress(g, 0)
	defer r.Pool()

	buf, err := r.Decode()
	if err != nil {
		t.Fatal(err)
	}

	// Same size is an exact copy.
	same, err := r.Scale(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		if same.Pix[i] != buf[i] {
			t.Fatalf("Scale(16, 16) pixel %d expected %d, got %d", i, buf[i], same.Pix[i])
		}
	}

	// Corners are preserved when enlarging.
	big, err := r.Scale(61, 31)
	if err != nil {
		t.Fatal(err)
	}
	corners := [][4]int{{0, 0, 0, 0}, {60, 0, 15, 0}, {0, 30, 0, 15}, {60, 30, 15, 15}}
	for _, c := range corners {
		if a, b := big.GrayAt(c[0], c[1]).Y, buf[c[2]+c[3]*16]; a != b {
			t.Errorf("corner (%d, %d) expected %d, got %d", c[0], c[1], b, a)
		}
	}
}

func TestBlerp(t *testing.T) {
	if b := blerp(0, 100, 100, 200, 0.5, 0.5); b != 100 {
		t.Error("blerp(0, 100, 100, 200, 0.5, 0.5) expected 100 got", b)
	}
	if b := blerp(10, 20, 30, 40, 0, 0); b != 10 {
		t.Error("blerp(10, 20, 30, 40, 0, 0) expected 10 got", b)
	}
}
