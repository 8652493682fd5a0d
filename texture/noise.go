// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"image"
	"sync"

	"github.com/SoftbearStudios/simplex/grid"
	"github.com/SoftbearStudios/simplex/grid/compressed"
	"github.com/SoftbearStudios/simplex/noise"
	"github.com/chewxy/math32"
)

// Lower bounds that setters clamp to, keeping fractal sums well defined.
const (
	MinGain       = 0.0001
	MinLacunarity = 0.0001
	MinPingPong   = 0.0001
)

// PreviewSize is the default edge length of Noise.Preview.
const PreviewSize = 128

// Noise is a shared, mutable noise configuration.
// Setters clamp their argument and, if the value changed, increment the version and
// call every change hook. All of its methods can be called concurrently.
type Noise struct {
	mutex     sync.Mutex
	generator noise.Generator
	version   uint64
	hooks     map[int]func()
	nextHook  int

	previewMutex   sync.Mutex
	preview        *compressed.Raster
	previewVersion uint64
}

func NewNoise(g noise.Generator) *Noise {
	n := &Noise{
		hooks: make(map[int]func()),
	}
	n.generator = sanitize(g)
	return n
}

// Generator returns a snapshot of the current configuration.
func (n *Noise) Generator() noise.Generator {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.generator
}

// Version starts at 0 and increases with every change.
func (n *Noise) Version() uint64 {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	return n.version
}

// OnChange registers fn to be called after each change, without the lock held.
// Calling the returned function unregisters it.
func (n *Noise) OnChange(fn func()) (cancel func()) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	id := n.nextHook
	n.nextHook++
	n.hooks[id] = fn

	return func() {
		n.mutex.Lock()
		defer n.mutex.Unlock()

		delete(n.hooks, id)
	}
}

// update applies mutate and reports whether anything changed.
func (n *Noise) update(mutate func(g *noise.Generator)) bool {
	n.mutex.Lock()

	old := n.generator
	mutate(&n.generator)
	n.generator = sanitize(n.generator)

	if n.generator == old {
		n.mutex.Unlock()
		return false
	}

	n.version++
	hooks := make([]func(), 0, len(n.hooks))
	for _, hook := range n.hooks {
		hooks = append(hooks, hook)
	}
	n.mutex.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return true
}

// sanitize applies the clamping policy of the setters.
func sanitize(g noise.Generator) noise.Generator {
	if g.Octaves < 1 {
		g.Octaves = 1
	}
	g.Frequency = clamp(g.Frequency, 0, 1)
	if !(g.Gain >= MinGain) {
		g.Gain = MinGain
	}
	if !(g.Lacunarity >= MinLacunarity) {
		g.Lacunarity = MinLacunarity
	}
	if !(g.PingPongStrength >= MinPingPong) {
		g.PingPongStrength = MinPingPong
	}

	if math32.IsNaN(g.Warp.Amplitude) || math32.IsInf(g.Warp.Amplitude, 0) {
		g.Warp.Amplitude = 0
	}
	if g.Warp.Octaves < 1 {
		g.Warp.Octaves = 1
	}
	g.Warp.Frequency = clamp(g.Warp.Frequency, 0, 1)
	if !(g.Warp.Gain >= MinGain) {
		g.Warp.Gain = MinGain
	}
	if !(g.Warp.Lacunarity >= MinLacunarity) {
		g.Warp.Lacunarity = MinLacunarity
	}
	return g
}

// Set replaces the whole configuration.
func (n *Noise) Set(g noise.Generator) bool {
	return n.update(func(old *noise.Generator) { *old = g })
}

func (n *Noise) SetSeed(seed int32) bool {
	return n.update(func(g *noise.Generator) { g.Seed = seed })
}

func (n *Noise) SetFrequency(frequency float32) bool {
	return n.update(func(g *noise.Generator) { g.Frequency = frequency })
}

func (n *Noise) SetOctaves(octaves int) bool {
	return n.update(func(g *noise.Generator) { g.Octaves = clampOctaves(octaves) })
}

func (n *Noise) SetLacunarity(lacunarity float32) bool {
	return n.update(func(g *noise.Generator) { g.Lacunarity = lacunarity })
}

func (n *Noise) SetGain(gain float32) bool {
	return n.update(func(g *noise.Generator) { g.Gain = gain })
}

func (n *Noise) SetPingPongStrength(strength float32) bool {
	return n.update(func(g *noise.Generator) { g.PingPongStrength = strength })
}

func (n *Noise) SetFractalMode(mode noise.FractalMode) bool {
	return n.update(func(g *noise.Generator) { g.Mode = mode })
}

func (n *Noise) SetWarpEnabled(enabled bool) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Enabled = enabled })
}

func (n *Noise) SetWarpAmplitude(amplitude float32) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Amplitude = amplitude })
}

func (n *Noise) SetWarpFrequency(frequency float32) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Frequency = frequency })
}

func (n *Noise) SetWarpFractal(mode noise.WarpFractalMode) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Fractal = mode })
}

func (n *Noise) SetWarpOctaves(octaves int) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Octaves = clampOctaves(octaves) })
}

func (n *Noise) SetWarpLacunarity(lacunarity float32) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Lacunarity = lacunarity })
}

func (n *Noise) SetWarpGain(gain float32) bool {
	return n.update(func(g *noise.Generator) { g.Warp.Gain = gain })
}

func clampOctaves(octaves int) uint16 {
	if octaves < 1 {
		return 1
	}
	if octaves > 0xffff {
		return 0xffff
	}
	return uint16(octaves)
}

// Preview returns a PreviewSize square grayscale rendering of the current
// configuration, rounded to 16 levels. It is regenerated only after a change.
func (n *Noise) Preview() (*image.Gray, error) {
	n.previewMutex.Lock()
	defer n.previewMutex.Unlock()

	if err := n.refreshPreview(); err != nil {
		return nil, err
	}
	return n.preview.Image()
}

// PreviewScaled is Preview resampled to width x height.
func (n *Noise) PreviewScaled(width, height int) (*image.Gray, error) {
	n.previewMutex.Lock()
	defer n.previewMutex.Unlock()

	if err := n.refreshPreview(); err != nil {
		return nil, err
	}
	return n.preview.Scale(maxInt(width, MinSize), maxInt(height, MinSize))
}

// PreviewRaster returns a copy of the compressed preview, which the caller may
// Pool, and the version it was rendered from.
func (n *Noise) PreviewRaster() (*compressed.Raster, uint64, error) {
	n.previewMutex.Lock()
	defer n.previewMutex.Unlock()

	if err := n.refreshPreview(); err != nil {
		return nil, 0, err
	}

	r := compressed.NewRaster()
	data := append(r.Data, n.preview.Data...)
	*r = *n.preview
	r.Data = data
	return r, n.previewVersion, nil
}

// refreshPreview must be called with previewMutex held.
func (n *Noise) refreshPreview() error {
	n.mutex.Lock()
	g, version := n.generator, n.version
	n.mutex.Unlock()

	if n.preview != nil && n.previewVersion == version {
		return nil
	}

	values, err := grid.Sample2D(g, grid.Spec{Width: PreviewSize, Height: PreviewSize, Normalize: true})
	if err != nil {
		return err
	}
	defer values.Pool()

	if n.preview != nil {
		n.preview.Pool()
	}
	n.preview = compressed.Compress(values, 0)
	n.previewVersion = version
	return nil
}
