// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Every message on the wire is {"type": ..., "data": ...}.

type (
	// inbound is an editor request, handled on the hub goroutine.
	inbound interface {
		Inbound(hub *Hub, client Client)
	}

	// outbound is sent by the hub to clients.
	outbound interface {
		// Pool returns pooled buffers once the outbound is written.
		Pool()
	}

	messageType string

	inboundEnvelope struct {
		Type messageType         `json:"type"`
		Data jsoniter.RawMessage `json:"data"`
	}

	outboundEnvelope struct {
		Data outbound    `json:"data"`
		Type messageType `json:"type"`
	}

	// request is an inbound together with the client that sent it.
	request struct {
		client Client
		in     inbound
	}
)

var (
	ErrMessageType    = errors.New("unknown message type")
	ErrMessageMissing = errors.New("message has no type")
	ErrMessageSize    = fmt.Errorf("message is larger than %d bytes", maxMessageSize)
)

// inbounds are the requests an editor may send, by type.
var inbounds = map[messageType]func() inbound{
	"configure":      func() inbound { return new(Configure) },
	"listPresets":    func() inbound { return new(ListPresets) },
	"loadPreset":     func() inbound { return new(LoadPreset) },
	"requestPreview": func() inbound { return new(RequestPreview) },
	"savePreset":     func() inbound { return new(SavePreset) },
	"setProperty":    func() inbound { return new(SetProperty) },
}

func outboundType(out outbound) messageType {
	switch out.(type) {
	case Error:
		return "error"
	case Presets:
		return "presets"
	case *Preview:
		return "preview"
	case Saved:
		return "saved"
	case Status:
		return "status"
	}
	panic(fmt.Sprintf("unregistered outbound %T", out))
}

// unmarshalInbound decodes one editor request. Data may be omitted for requests
// without fields.
func unmarshalInbound(buf []byte) (inbound, error) {
	if len(buf) > maxMessageSize {
		return nil, ErrMessageSize
	}

	var envelope inboundEnvelope
	if err := json.Unmarshal(buf, &envelope); err != nil {
		return nil, err
	}
	if envelope.Type == "" {
		return nil, ErrMessageMissing
	}
	create, ok := inbounds[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMessageType, envelope.Type)
	}

	in := create()
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, in); err != nil {
			return nil, fmt.Errorf("%s: %w", envelope.Type, err)
		}
	}
	return in, nil
}

func marshalOutbound(out outbound) ([]byte, error) {
	return json.Marshal(outboundEnvelope{Data: out, Type: outboundType(out)})
}
