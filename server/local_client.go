// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import "log"

// LocalClient is an in-process client that exchanges the same json messages as a
// SocketClient, for example with a browser running the hub in a web worker.
type LocalClient struct {
	ClientData
	hub  *Hub
	post func(data []byte)
}

// NewLocalClient creates a client of hub. post is called on the hub goroutine
// with each encoded outbound and must not block.
func NewLocalClient(hub *Hub, post func(data []byte)) *LocalClient {
	return &LocalClient{hub: hub, post: post}
}

func (client *LocalClient) Close() {
	log.Println("local client closed")
}

func (client *LocalClient) Data() *ClientData {
	return &client.ClientData
}

func (client *LocalClient) Destroy() {
	client.hub.Unregister(client)
}

func (client *LocalClient) Init() {}

func (client *LocalClient) Send(out outbound) {
	buf, err := marshalOutbound(out)
	out.Pool()
	if err != nil {
		log.Println("marshal error:", err)
		return
	}
	client.post(buf)
}

// Receive decodes one inbound message and queues it on the hub.
func (client *LocalClient) Receive(data []byte) error {
	in, err := unmarshalInbound(data)
	if err != nil {
		return err
	}
	client.hub.receive(client, in)
	return nil
}
