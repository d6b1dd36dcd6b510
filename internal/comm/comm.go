package comm

import (
	"encoding/json"
)

// WSMessage is the envelope for every websocket frame.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "subscribe", "change"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

// Change event actions, matching the row-level operations the feed reports.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// ChangeEvent is published to NATS after every successful games mutation
// and fanned out to subscribed sockets. Consumers refetch; the event
// carries no row data on purpose.
type ChangeEvent struct {
	Action string `json:"action"`
	Table  string `json:"table"`
	ID     int64  `json:"id"`
}

// SubscribeRequest is the payload of a "subscribe" frame from a client.
type SubscribeRequest struct {
	Table string `json:"table"`
}
