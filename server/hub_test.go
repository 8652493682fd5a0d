// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/texture"
)

const testTimeout = 5 * time.Second

// testClient records what the hub sends it.
type testClient struct {
	ClientData
	hub  *Hub
	out  chan outbound
	once sync.Once
}

func newTestClient(h *Hub) *testClient {
	return &testClient{hub: h, out: make(chan outbound, 64)}
}

func (c *testClient) Init() {}

// connect registers a testClient and waits until the hub has done so, since
// requests from unregistered clients are ignored.
func connect(t *testing.T, h *Hub) *testClient {
	t.Helper()
	c := newTestClient(h)
	h.Register(c)
	c.waitFor(t, "status", func(out outbound) bool {
		_, ok := out.(Status)
		return ok
	})
	return c
}

func (c *testClient) Close() {
	close(c.out)
}

func (c *testClient) Send(out outbound) {
	select {
	case c.out <- out:
	default:
		out.Pool()
	}
}

func (c *testClient) Destroy() {
	c.once.Do(func() {
		c.hub.Unregister(c)
	})
}

func (c *testClient) Data() *ClientData {
	return &c.ClientData
}

// waitFor reads messages until match returns true.
func (c *testClient) waitFor(t *testing.T, what string, match func(out outbound) bool) outbound {
	t.Helper()

	timeout := time.After(testTimeout)
	for {
		select {
		case out, ok := <-c.out:
			if !ok {
				t.Fatalf("closed while waiting for %s", what)
			}
			if match(out) {
				return out
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

func testHub(t *testing.T) *Hub {
	options := texture.DefaultOptions()
	options.Width = 32
	options.Height = 32

	h := NewHub(HubOptions{
		Noise:    noise.NewDefault(),
		Texture:  options,
		Database: preset.NewMemoryDatabase(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func TestHub_Register(t *testing.T) {
	h := testHub(t)
	c := newTestClient(h)
	h.Register(c)

	status := c.waitFor(t, "status", func(out outbound) bool {
		_, ok := out.(Status)
		return ok
	}).(Status)
	if status.Clients != 1 || status.Version != 0 {
		t.Errorf("unexpected status %+v", status)
	}
	if status.Preset.Generator() != noise.NewDefault() {
		t.Errorf("unexpected preset %+v", status.Preset)
	}

	preview := c.waitFor(t, "preview", func(out outbound) bool {
		_, ok := out.(*Preview)
		return ok
	}).(*Preview)
	if preview.Raster.Width != texture.PreviewSize || preview.Version != 0 {
		t.Errorf("unexpected preview %dx%d version %d", preview.Raster.Width, preview.Raster.Height, preview.Version)
	}
	preview.Pool()
}

func TestHub_SetProperty(t *testing.T) {
	h := testHub(t)
	c := connect(t, h)

	h.receive(c, SetProperty{Name: "seed", Value: "7"})

	c.waitFor(t, "changed status", func(out outbound) bool {
		status, ok := out.(Status)
		return ok && status.Preset.Seed == 7 && status.Version == 1
	})
	c.waitFor(t, "changed preview", func(out outbound) bool {
		preview, ok := out.(*Preview)
		return ok && preview.Version == 1
	})

	h.receive(c, SetProperty{Name: "octaves", Value: "lots"})
	c.waitFor(t, "error", func(out outbound) bool {
		_, ok := out.(Error)
		return ok
	})

	if g := h.Noise().Generator(); g.Seed != 7 {
		t.Errorf("expected seed 7, got %d", g.Seed)
	}
}

func TestHub_Presets(t *testing.T) {
	h := testHub(t)
	c := connect(t, h)

	h.receive(c, SetProperty{Name: "seed", Value: "11"})
	h.receive(c, SavePreset{Name: "Eleven"})
	c.waitFor(t, "saved", func(out outbound) bool {
		saved, ok := out.(Saved)
		return ok && saved.Name == "Eleven"
	})

	h.receive(c, SavePreset{Name: "Eleven"})
	c.waitFor(t, "exists error", func(out outbound) bool {
		e, ok := out.(Error)
		return ok && e.Message == preset.ErrExists.Error()
	})

	h.receive(c, ListPresets{})
	c.waitFor(t, "presets", func(out outbound) bool {
		presets, ok := out.(Presets)
		return ok && len(presets.Names) == 1 && presets.Names[0] == "Eleven"
	})

	h.receive(c, SetProperty{Name: "seed", Value: "12"})
	h.receive(c, LoadPreset{Name: "Eleven"})
	c.waitFor(t, "loaded status", func(out outbound) bool {
		status, ok := out.(Status)
		return ok && status.Preset.Seed == 11 && status.Version >= 3
	})

	h.receive(c, LoadPreset{Name: "Missing"})
	c.waitFor(t, "not found error", func(out outbound) bool {
		e, ok := out.(Error)
		return ok && e.Message == preset.ErrNotFound.Error()
	})
}

func TestHub_RequestPreview(t *testing.T) {
	h := testHub(t)
	c := newTestClient(h)
	h.Register(c)

	c.waitFor(t, "preview", func(out outbound) bool {
		_, ok := out.(*Preview)
		return ok
	})

	h.receive(c, RequestPreview{})
	c.waitFor(t, "requested preview", func(out outbound) bool {
		preview, ok := out.(*Preview)
		return ok && preview.Version == 0
	})
}

func TestHub_Unregister(t *testing.T) {
	h := testHub(t)
	c := newTestClient(h)
	h.Register(c)
	c.waitFor(t, "status", func(out outbound) bool {
		_, ok := out.(Status)
		return ok
	})

	c.Destroy()

	timeout := time.After(testTimeout)
	for {
		select {
		case _, ok := <-c.out:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("client not closed")
		}
	}
}

func TestHub_IgnoresUnregistered(t *testing.T) {
	h := testHub(t)
	c := connect(t, h)

	stranger := newTestClient(h)
	h.receive(stranger, SetProperty{Name: "seed", Value: "9"})
	h.receive(c, SetProperty{Name: "seed", Value: "7"})

	c.waitFor(t, "changed status", func(out outbound) bool {
		status, ok := out.(Status)
		return ok && status.Version == 1
	})
	if g := h.Noise().Generator(); g.Seed != 7 {
		t.Errorf("expected seed 7, got %d", g.Seed)
	}
	if len(stranger.out) != 0 {
		t.Error("unregistered client was answered")
	}
}

func TestHub_Atlas(t *testing.T) {
	h := NewHub(HubOptions{Noise: noise.NewDefault(), Texture: texture.DefaultOptions()})

	a := h.Atlas()
	if h.Atlas() != a {
		t.Error("atlas not reused")
	}

	h.Noise().SetSeed(5)
	if h.Atlas() == a {
		t.Error("atlas not replaced after a change")
	}
}
