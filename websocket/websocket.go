// Package websocket exposes the two duplex endpoints: private chat and
// location tracking. Each connection gets one reader (this package) and one
// writer (the registry's write pump).
package websocket

import (
	"net/http"
	"time"

	"github.com/das-globally-web/discovery-backend/chat"
	"github.com/das-globally-web/discovery-backend/proximity"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	EnableCompression: false,
	HandshakeTimeout:  10 * time.Second,
}

// Gateway routes inbound frames from live connections to the owning engine.
type Gateway struct {
	Registry  *registry.Registry
	Chat      *chat.Engine
	Proximity *proximity.Engine
}

// ChatFrame is the inbound frame on the chat channel.
type ChatFrame struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// LocationFrame is the inbound frame on the location channel. Coordinates
// are pointers so a missing field is distinguishable from 0.
type LocationFrame struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ErrorFrame is reported back on the same channel; the connection stays open.
type ErrorFrame struct {
	Error string `json:"error"`
}
