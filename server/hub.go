// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/grid/compressed"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/store"
	"github.com/SoftbearStudios/simplex/texture"
)

// Changes are broadcast at most this often.
const broadcastPeriod = time.Second / 10

type HubOptions struct {
	Noise   noise.Generator
	Texture texture.Options

	// Optional
	Database     preset.Database
	Filesystem   store.Filesystem
	SecondsCache int // Cache lifetime of uploaded textures.
}

// Hub owns the shared noise and texture that all clients view and edit, and
// broadcasts their changes.
type Hub struct {
	noise   *texture.Noise
	texture *texture.Texture

	db           preset.Database
	fs           store.Filesystem
	secondsCache int

	// Accessed only by the hub goroutine.
	clients clientSet

	// Served atomically by HTTP.
	statusJSON atomic.Value
	atlasMutex sync.Mutex
	atlas      *compressed.Atlas
	atlasKey   atlasKey

	requests   chan request
	register   chan Client
	unregister chan Client
	changed    chan struct{}
	done       chan struct{}
}

type atlasKey struct {
	generator noise.Generator
	spec      grid.Spec
}

func NewHub(options HubOptions) *Hub {
	n := texture.NewNoise(options.Noise)
	h := &Hub{
		noise:        n,
		texture:      texture.New(n, options.Texture),
		db:           options.Database,
		fs:           options.Filesystem,
		secondsCache: options.SecondsCache,
		clients:      make(clientSet),
		requests:     make(chan request, 64),
		register:     make(chan Client, 8),
		unregister:   make(chan Client, 16),
		changed:      make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	h.updateStatusJSON()
	return h
}

// Noise is the shared noise. It may be changed directly; clients are notified.
func (h *Hub) Noise() *texture.Noise {
	return h.noise
}

// Texture is the shared texture.
func (h *Hub) Texture() *texture.Texture {
	return h.texture
}

// Preset is a snapshot of the shared configuration, without a name.
func (h *Hub) Preset() preset.Preset {
	p := preset.FromGenerator("", h.noise.Generator())
	p.Texture = preset.FromOptions(h.texture.Options())
	return p
}

// Run handles clients until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	cancelNoise := h.noise.OnChange(h.notify)
	cancelTexture := h.texture.OnChange(h.notify)
	broadcastTicker := time.NewTicker(broadcastPeriod)

	defer func() {
		cancelNoise()
		cancelTexture()
		broadcastTicker.Stop()

		for client := range h.clients {
			client.Close()
		}
		h.clients = make(clientSet)
		close(h.done)
	}()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			if !h.clients.add(client) {
				break
			}
			client.Init()

			client.Send(h.status())
			h.sendPreview(client)
			h.updateStatusJSON()
		case client := <-h.unregister:
			if h.clients.remove(client) {
				client.Close()
				h.updateStatusJSON()
			}
		case r := <-h.requests:
			h.handle(r)

			// Drain what queued up meanwhile before broadcasting.
			for n := len(h.requests); n > 0; n-- {
				h.handle(<-h.requests)
			}
		case <-h.changed:
			dirty = true
		case <-broadcastTicker.C:
			if dirty {
				dirty = false
				h.broadcast()
			}
		}
	}
}

// notify may be called from any goroutine.
func (h *Hub) notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// Register adds a client. It may be called from any goroutine.
func (h *Hub) Register(client Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister removes a client. It may be called from any goroutine, including the
// hub goroutine, so it never blocks.
func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	default:
		go func() {
			select {
			case h.unregister <- client:
			case <-h.done:
			}
		}()
	}
}

// receive queues a request from client. It blocks while the queue is full.
func (h *Hub) receive(client Client, in inbound) {
	select {
	case h.requests <- request{client: client, in: in}:
	case <-h.done:
	}
}

// handle ignores requests from clients that were unregistered meanwhile.
func (h *Hub) handle(r request) {
	if _, ok := h.clients[r.client]; ok {
		r.in.Inbound(h, r.client)
	}
}

func (h *Hub) broadcast() {
	status := h.status()
	for client := range h.clients {
		client.Send(status)
		h.sendPreview(client)
	}
	h.updateStatusJSON()
}

func (h *Hub) sendPreview(client Client) {
	raster, version, err := h.noise.PreviewRaster()
	if err != nil {
		log.Println("preview error:", err)
		return
	}

	data := client.Data()
	if data.previewSent && data.previewVersion == version {
		raster.Pool()
		return
	}
	data.previewSent = true
	data.previewVersion = version

	client.Send(&Preview{Raster: raster, Version: version})
}

func (h *Hub) status() Status {
	return Status{
		Preset:  h.Preset(),
		Version: h.noise.Version(),
		Clients: len(h.clients),
	}
}

func (h *Hub) updateStatusJSON() {
	buf, err := json.Marshal(h.status())
	if err != nil {
		log.Println("status error:", err)
		return
	}
	h.statusJSON.Store(buf)
}

// apply replaces the configuration with a preset's.
func (h *Hub) apply(p *preset.Preset) error {
	if p.Texture != nil {
		options, err := p.Texture.Options()
		if err != nil {
			return err
		}
		h.texture.SetOptions(options)
	}
	h.noise.Set(p.Generator())
	return nil
}

// Atlas returns an atlas of the current configuration, reusing the previous one
// if nothing changed.
func (h *Hub) Atlas() *compressed.Atlas {
	options := h.texture.Options()
	key := atlasKey{
		generator: h.noise.Generator(),
		spec:      options.Spec(),
	}

	h.atlasMutex.Lock()
	defer h.atlasMutex.Unlock()

	if h.atlas == nil || h.atlasKey != key {
		h.atlas = compressed.NewAtlas(key.generator, key.spec)
		h.atlasKey = key
	}
	return h.atlas
}
