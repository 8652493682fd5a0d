// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/SoftbearStudios/simplex/noise"
)

func TestJsonIter_Outbound(t *testing.T) {
	tests := []struct {
		out  outbound
		json string
	}{
		{Saved{Name: "Hills"}, `{"data":{"name":"Hills"},"type":"saved"}`},
		{Error{Message: "no"}, `{"data":{"message":"no"},"type":"error"}`},
		{Presets{Names: []string{"a", "b"}}, `{"data":{"names":["a","b"]},"type":"presets"}`},
	}

	for _, test := range tests {
		buf, err := marshalOutbound(test.out)
		if err != nil {
			t.Error("error marshaling:", err.Error())
			continue
		}
		if string(buf) != test.json {
			t.Errorf("different output:\nexpected: %s\ngot:      %s", test.json, buf)
		}
	}
}

func TestJsonIter_Inbound(t *testing.T) {
	tests := []struct {
		json string
		in   inbound
	}{
		{`{"type":"setProperty","data":{"name":"seed","value":"5"}}`, &SetProperty{Name: "seed", Value: "5"}},
		{`{"data":{"name":"Hills"},"type":"loadPreset"}`, &LoadPreset{Name: "Hills"}},
		{`{"type":"savePreset","data":{"name":"Hills","overwrite":true}}`, &SavePreset{Name: "Hills", Overwrite: true}},
		{`{"type":"requestPreview"}`, &RequestPreview{}},
		{`{"type":"listPresets","data":{}}`, &ListPresets{}},
	}

	for _, test := range tests {
		in, err := unmarshalInbound([]byte(test.json))
		if err != nil {
			t.Errorf("%s: %v", test.json, err)
			continue
		}
		switch want := test.in.(type) {
		case *SetProperty:
			if got, ok := in.(*SetProperty); !ok || *got != *want {
				t.Errorf("%s: expected %#v, got %#v", test.json, want, in)
			}
		case *LoadPreset:
			if got, ok := in.(*LoadPreset); !ok || *got != *want {
				t.Errorf("%s: expected %#v, got %#v", test.json, want, in)
			}
		case *SavePreset:
			if got, ok := in.(*SavePreset); !ok || *got != *want {
				t.Errorf("%s: expected %#v, got %#v", test.json, want, in)
			}
		case *RequestPreview:
			if _, ok := in.(*RequestPreview); !ok {
				t.Errorf("%s: expected %T, got %T", test.json, want, in)
			}
		case *ListPresets:
			if _, ok := in.(*ListPresets); !ok {
				t.Errorf("%s: expected %T, got %T", test.json, want, in)
			}
		}
	}
}

func TestJsonIter_Configure(t *testing.T) {
	in, err := unmarshalInbound([]byte(`{"type":"configure","data":{"seed":3,"octaves":2,"frequency":0.5,"fractal_type":2,"domain_warp_fractal_type":"independent"}}`))
	if err != nil {
		t.Fatal(err)
	}

	configure, ok := in.(*Configure)
	if !ok {
		t.Fatalf("expected *Configure, got %T", in)
	}
	if configure.Seed != 3 || configure.Octaves != 2 || configure.Frequency != 0.5 {
		t.Errorf("unexpected configuration %+v", configure.Preset)
	}
	if configure.FractalType != noise.FractalRidged {
		t.Errorf("expected %s, got %s", noise.FractalRidged, configure.FractalType)
	}
	if configure.DomainWarpFractalType != noise.WarpFractalIndependent {
		t.Errorf("expected %s, got %s", noise.WarpFractalIndependent, configure.DomainWarpFractalType)
	}
}

func TestJsonIter_Invalid(t *testing.T) {
	tests := []struct {
		json string
		err  error
	}{
		{`{"type":"status","data":{}}`, ErrMessageType},
		{`{"type":"invalidInbound","data":{}}`, ErrMessageType},
		{`{"data":{}}`, ErrMessageMissing},
		{`{"type":"loadPreset","data":{"name":"` + strings.Repeat("a", maxMessageSize) + `"}}`, ErrMessageSize},
	}

	for _, test := range tests {
		in, err := unmarshalInbound([]byte(test.json))
		if !errors.Is(err, test.err) {
			t.Errorf("%.40s: expected %v, got %v (%T)", test.json, test.err, err, in)
		}
	}

	for _, bad := range []string{`{"type":`, `{"type":"setProperty","data":{"name":5}}`, `[]`} {
		if _, err := unmarshalInbound([]byte(bad)); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}
