// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"log"

	"github.com/SoftbearStudios/simplex/preset"
)

var ErrNoDatabase = errors.New("presets are not available")

// Add new requests to inbounds in message.go.
type (
	// Configure replaces the whole noise configuration, and the texture options if
	// present. The name is ignored.
	Configure struct {
		preset.Preset
	}

	// ListPresets requests Presets.
	ListPresets struct{}

	// LoadPreset replaces the configuration with a stored preset.
	LoadPreset struct {
		Name string `json:"name"`
	}

	// RequestPreview asks for a Preview even if the client has the current one.
	RequestPreview struct{}

	// SavePreset stores the current configuration. Unless Overwrite is set, an
	// existing preset of the same name is an error.
	SavePreset struct {
		Name      string `json:"name"`
		Overwrite bool   `json:"overwrite"`
	}

	// SetProperty changes one property, named as in the preset record. Value is
	// parsed according to the property's type.
	SetProperty struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
)

func (data Configure) Inbound(h *Hub, client Client) {
	if err := h.apply(&data.Preset); err != nil {
		client.Send(Error{Message: err.Error()})
	}
}

// rejected answers a request that could not be decoded. It has no type so clients
// can't send it.
type rejected struct {
	err error
}

func (data rejected) Inbound(_ *Hub, client Client) {
	client.Send(Error{Message: data.err.Error()})
}

func (data ListPresets) Inbound(h *Hub, client Client) {
	if h.db == nil {
		client.Send(Error{Message: ErrNoDatabase.Error()})
		return
	}

	presets, err := h.db.ReadPresets()
	if err != nil {
		log.Println("read presets error:", err)
		client.Send(Error{Message: err.Error()})
		return
	}

	names := make([]string, len(presets))
	for i := range presets {
		names[i] = presets[i].Name
	}
	client.Send(Presets{Names: names})
}

func (data LoadPreset) Inbound(h *Hub, client Client) {
	if h.db == nil {
		client.Send(Error{Message: ErrNoDatabase.Error()})
		return
	}

	p, err := h.db.ReadPreset(data.Name)
	if err == nil {
		err = h.apply(&p)
	}
	if err != nil {
		client.Send(Error{Message: err.Error()})
	}
}

func (data RequestPreview) Inbound(h *Hub, client Client) {
	client.Data().previewSent = false
	h.sendPreview(client)
}

func (data SavePreset) Inbound(h *Hub, client Client) {
	if h.db == nil {
		client.Send(Error{Message: ErrNoDatabase.Error()})
		return
	}

	p := h.Preset()
	p.Name = data.Name
	err := p.Validate()
	if err == nil {
		if data.Overwrite {
			err = h.db.UpdatePreset(p)
		} else {
			err = h.db.CreatePreset(p)
		}
	}

	if err != nil {
		client.Send(Error{Message: err.Error()})
		return
	}
	client.Send(Saved{Name: p.Name})
}

func (data SetProperty) Inbound(h *Hub, client Client) {
	if err := setProperty(h.noise, h.texture, data.Name, data.Value); err != nil {
		client.Send(Error{Message: err.Error()})
	}
}
