// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package preset

import (
	"fmt"
	"io"
	"reflect"
	"unsafe"

	"github.com/SoftbearStudios/simplex/noise"
	jsoniter "github.com/json-iterator/go"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	// Fractal types are written by name but may be read as the numeric enum values
	// older presets were saved with.
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(noise.FractalMode(0)).String(), decodeFractalMode)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(noise.WarpFractalMode(0)).String(), decodeWarpFractalMode)

	return jsoniter.Config{
		IndentionStep:                 2,
		MarshalFloatWith6Digits:       false,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

// JSON is the codec presets are stored and served with.
func JSON() jsoniter.API {
	return json
}

func Marshal(p *Preset) ([]byte, error) {
	return json.Marshal(p)
}

func Unmarshal(data []byte) (Preset, error) {
	var p Preset
	err := json.Unmarshal(data, &p)
	return p, err
}

// Read decodes one preset, starting from the defaults so that missing fields keep
// their default values.
func Read(r io.Reader) (Preset, error) {
	p := Default("")
	err := json.NewDecoder(r).Decode(&p)
	return p, err
}

func Write(w io.Writer, p *Preset) error {
	return json.NewEncoder(w).Encode(p)
}

func decodeFractalMode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	mode := (*noise.FractalMode)(ptr)
	if iter.WhatIsNext() == jsoniter.NumberValue {
		n := iter.ReadInt()
		if n < 0 || n > int(noise.FractalPingPong) {
			iter.ReportError("decode fractal_type", fmt.Sprintf("invalid fractal type %d", n))
			return
		}
		*mode = noise.FractalMode(n)
		return
	}
	if err := mode.UnmarshalText([]byte(iter.ReadString())); err != nil {
		iter.ReportError("decode fractal_type", err.Error())
	}
}

func decodeWarpFractalMode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	mode := (*noise.WarpFractalMode)(ptr)
	if iter.WhatIsNext() == jsoniter.NumberValue {
		n := iter.ReadInt()
		if n < 0 || n > int(noise.WarpFractalIndependent) {
			iter.ReportError("decode domain_warp_fractal_type", fmt.Sprintf("invalid domain warp fractal type %d", n))
			return
		}
		*mode = noise.WarpFractalMode(n)
		return
	}
	if err := mode.UnmarshalText([]byte(iter.ReadString())); err != nil {
		iter.ReportError("decode domain_warp_fractal_type", err.Error())
	}
}
