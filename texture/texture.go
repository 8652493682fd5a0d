// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package texture

import (
	"errors"
	"image"
	"sync"

	"github.com/SoftbearStudios/simplex/grid"
)

var ErrNoNoise = errors.New("texture has no noise")

// Texture is an image rendered from a Noise, regenerated lazily after the noise or
// any of its options change. All of its methods can be called concurrently.
type Texture struct {
	mutex   sync.Mutex
	noise   *Noise
	cancel  func()
	options Options
	dirty   bool

	image   image.Image
	mipmaps []image.Image

	hooks    map[int]func()
	nextHook int
}

// New creates a texture of n. n may be nil, in which case Image fails until SetNoise.
func New(n *Noise, options Options) *Texture {
	t := &Texture{
		options: options.Clamped(),
		dirty:   true,
		hooks:   make(map[int]func()),
	}
	t.SetNoise(n)
	return t
}

func (t *Texture) Noise() *Noise {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.noise
}

// SetNoise replaces the noise, unsubscribing from the previous one.
func (t *Texture) SetNoise(n *Noise) {
	t.mutex.Lock()
	if t.noise == n {
		t.mutex.Unlock()
		return
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.noise = n
	if n != nil {
		t.cancel = n.OnChange(t.MarkDirty)
	}
	t.mutex.Unlock()

	t.MarkDirty()
}

// Options returns a copy of the current options.
func (t *Texture) Options() Options {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.options
}

// SetOptions replaces all options at once, clamping sizes and skirt.
func (t *Texture) SetOptions(options Options) {
	t.update(func(o *Options) { *o = options })
}

func (t *Texture) SetWidth(width int) {
	t.update(func(o *Options) { o.Width = width })
}

func (t *Texture) SetHeight(height int) {
	t.update(func(o *Options) { o.Height = height })
}

func (t *Texture) SetInvert(invert bool) {
	t.update(func(o *Options) { o.Invert = invert })
}

func (t *Texture) SetIn3DSpace(enabled bool) {
	t.update(func(o *Options) { o.In3DSpace = enabled })
}

func (t *Texture) SetNormalize(normalize bool) {
	t.update(func(o *Options) { o.Normalize = normalize })
}

func (t *Texture) SetSeamless(seamless bool) {
	t.update(func(o *Options) { o.Seamless = seamless })
}

// SetSeamlessTiling picks how seamless textures wrap.
func (t *Texture) SetSeamlessTiling(tiling grid.Tiling) {
	t.update(func(o *Options) { o.Tiling = tiling })
}

// SetSlice sets the z of the plane sampled in 3D space.
func (t *Texture) SetSlice(z float32) {
	t.update(func(o *Options) { o.Slice = z })
}

func (t *Texture) SetSeamlessBlendSkirt(skirt float32) {
	t.update(func(o *Options) { o.Skirt = skirt })
}

// SetColorRamp sets the ramp. The ramp must not be modified afterwards; set a new one.
func (t *Texture) SetColorRamp(ramp *Ramp) {
	t.update(func(o *Options) { o.Ramp = ramp })
}

func (t *Texture) SetNormalMap(enabled bool) {
	t.update(func(o *Options) { o.NormalMap = enabled })
}

func (t *Texture) SetBumpStrength(strength float32) {
	t.update(func(o *Options) { o.BumpStrength = strength })
}

func (t *Texture) SetMipmaps(enabled bool) {
	t.update(func(o *Options) { o.Mipmaps = enabled })
}

func (t *Texture) update(mutate func(o *Options)) {
	t.mutex.Lock()
	old := t.options
	mutate(&t.options)
	t.options = t.options.Clamped()
	changed := t.options != old
	t.mutex.Unlock()

	if changed {
		t.MarkDirty()
	}
}

// OnChange registers fn to be called whenever the texture becomes dirty.
func (t *Texture) OnChange(fn func()) (cancel func()) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := t.nextHook
	t.nextHook++
	t.hooks[id] = fn

	return func() {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		delete(t.hooks, id)
	}
}

// MarkDirty forces the next Image to regenerate.
func (t *Texture) MarkDirty() {
	t.mutex.Lock()
	t.dirty = true
	hooks := make([]func(), 0, len(t.hooks))
	for _, hook := range t.hooks {
		hooks = append(hooks, hook)
	}
	t.mutex.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// Dirty reports whether the next Image will regenerate.
func (t *Texture) Dirty() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.dirty
}

// Image returns the rendered texture, regenerating it if dirty.
func (t *Texture) Image() (image.Image, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.regenerate(); err != nil {
		return nil, err
	}
	return t.image, nil
}

// Mipmaps returns the mipmap chain below Image, or nil if mipmaps are disabled.
func (t *Texture) Mipmaps() ([]image.Image, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if err := t.regenerate(); err != nil {
		return nil, err
	}
	return t.mipmaps, nil
}

// Regenerate renders the texture now, even if nothing changed.
func (t *Texture) Regenerate() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.dirty = true
	return t.regenerate()
}

// regenerate must be called with the lock held.
func (t *Texture) regenerate() error {
	if !t.dirty {
		return nil
	}
	if t.noise == nil {
		return ErrNoNoise
	}

	img, err := Render(t.noise.Generator(), t.options)
	if err != nil {
		return err
	}

	t.image = img
	t.mipmaps = nil
	if t.options.Mipmaps {
		t.mipmaps = Mipmaps(img)
	}
	t.dirty = false
	return nil
}
