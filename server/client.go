// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

// Client is one editor connected to a Hub. Init, Close and Send are only called by
// the hub goroutine.
type Client interface {
	// Init starts the client after it is registered.
	Init()

	// Close stops the client after it is unregistered or the hub stops.
	Close()

	// Send queues out. It must not block; a client that can't keep up may drop
	// previews or destroy itself.
	Send(out outbound)

	// Destroy asks the hub to unregister the client. It may be called any number of
	// times from any goroutine.
	Destroy()

	// Data is the client's state kept by the hub.
	Data() *ClientData
}

// ClientData is embedded by every Client.
type ClientData struct {
	// Version of the last preview sent, to skip redundant sends.
	previewVersion uint64
	previewSent    bool
}

// clientSet holds the registered clients.
type clientSet map[Client]struct{}

func (set clientSet) add(client Client) bool {
	if _, ok := set[client]; ok {
		return false
	}
	set[client] = struct{}{}
	return true
}

func (set clientSet) remove(client Client) bool {
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	return true
}
