package inspect

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	Interval string `json:"interval"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	// Server to client
	TypeWelcome  = "welcome"
	TypeSnapshot = "snapshot"
	TypeError    = "error"

	// Client to server
	TypeSnapshotRequest = "snapshot.request"
	TypePause           = "stream.pause"
	TypeResume          = "stream.resume"
)
