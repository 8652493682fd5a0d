// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build js && wasm

// Command simplexwasm runs the editor hub inside a web worker, so the editor works
// without a server. Messages are the same json as over the websocket.
package main

import (
	"context"
	"log"
	"syscall/js"

	"github.com/SoftbearStudios/simplex/noise"
	"github.com/SoftbearStudios/simplex/preset"
	"github.com/SoftbearStudios/simplex/server"
	"github.com/SoftbearStudios/simplex/texture"
)

var (
	self        = js.Global().Get("self")
	postMessage = self.Get("postMessage")
)

func main() {
	hub := server.NewHub(server.HubOptions{
		Noise:    noise.NewDefault(),
		Texture:  texture.DefaultOptions(),
		Database: preset.NewMemoryDatabase(),
	})

	// There may only ever be one local client
	localClient := server.NewLocalClient(hub, func(data []byte) {
		postMessage.Invoke(string(data))
	})

	self.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		data := []byte(args[0].Get("data").String())
		if err := localClient.Receive(data); err != nil {
			log.Println("unmarshal error:", err.Error())
		}
		return nil
	}))

	log.Println("simplex WASM hub started")

	hub.Register(localClient)
	hub.Run(context.Background())
}
