// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import "github.com/chewxy/math32"

// Hint is the range an editor should offer for a field. Values outside it are
// still accepted unless the setter clamps them.
type Hint struct {
	Min         float32 `json:"min"`
	Max         float32 `json:"max"`
	Step        float32 `json:"step,omitempty"`
	Exponential bool    `json:"exponential,omitempty"`
	OrGreater   bool    `json:"or_greater,omitempty"`
}

// Hints is keyed by json field name.
var Hints = map[string]Hint{
	"frequency":              {Min: 0.0001, Max: 1, Exponential: true},
	"octaves":                {Min: 1, Max: 16, Step: 1},
	"lacunarity":             {Min: 0.0001, Max: 10, OrGreater: true},
	"gain":                   {Min: 0.0001, Max: 1, OrGreater: true},
	"ping_pong_strength":     {Min: 0.0001, Max: 10, OrGreater: true},
	"domain_warp_amplitude":  {Min: 0, Max: 100, OrGreater: true},
	"domain_warp_frequency":  {Min: 0.0001, Max: 1, Exponential: true},
	"domain_warp_octaves":    {Min: 1, Max: 16, Step: 1},
	"domain_warp_lacunarity": {Min: 0.0001, Max: 10, OrGreater: true},
	"domain_warp_gain":       {Min: 0.0001, Max: 1, OrGreater: true},
	"width":                  {Min: 1, Max: 4096, Step: 1, OrGreater: true},
	"height":                 {Min: 1, Max: 4096, Step: 1, OrGreater: true},
	"seamless_blend_skirt":   {Min: 0, Max: 0.5, Step: 0.01},
	"bump_strength":          {Min: 0.1, Max: 32, Step: 0.1},
}

// Lerp maps t in [0, 1] onto the hint's range, geometrically if Exponential.
func (h Hint) Lerp(t float32) float32 {
	if h.Exponential && h.Min > 0 {
		return h.Min * math32.Pow(h.Max/h.Min, t)
	}
	return h.Min + (h.Max-h.Min)*t
}
