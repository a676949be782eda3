package domain

import "time"

// Log status values. Error rows record exchanges where the upstream call
// failed after a log was still requested (kept for parity with admin tooling).
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ChatLog is one visitor exchange with the chatbot. The log is append-only:
// rows are inserted once and never mutated or deleted.
type ChatLog struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Reply is what the chat endpoint returns to the visitor.
type Reply struct {
	Response string `json:"response"`
	Language string `json:"language"`
	Fallback bool   `json:"fallback,omitempty"`
}
