package ws

import "encoding/json"

// MessageType constants for the team feed protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeWelcome         = "welcome"
	TypeQuestionUsed    = "question_used"
	TypeQuestionSkipped = "question_skipped"
	TypeTeamReset       = "team_reset"
	TypePong            = "pong"
	TypeError           = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// WelcomePayload is sent once after a client joins a team feed.
type WelcomePayload struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
}

// ErrorPayload describes a protocol error.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
