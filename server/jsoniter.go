// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import jsoniter "github.com/json-iterator/go"

// json encodes messages and HTTP responses. Floats are written exactly so that
// settings round trip through editors unchanged.
var json = jsoniter.Config{
	IndentionStep:                 0,
	MarshalFloatWith6Digits:       false,
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	UseNumber:                     false,
	DisallowUnknownFields:         false,
	TagKey:                        "json",
	OnlyTaggedField:               false,
	ValidateJsonRawMessage:        true,
	ObjectFieldMustBeSimpleString: true,
	CaseSensitive:                 true,
}.Froze()
