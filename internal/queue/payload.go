// Package queue carries fire-and-forget jobs between the API and the worker.
// Both sides communicate only through the job payload shapes defined here.
package queue

import (
	"encoding/json"
	"time"
)

// ChatLogJob asks the worker to persist one chat exchange. Delivery is
// at-least-once: a worker retry may insert the same exchange twice, which the
// append-only log accepts. JobID identifies the enqueue attempt should
// consumer-side deduplication ever be needed.
type ChatLogJob struct {
	JobID     string    `json:"job_id"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Marshal encodes the job for transport.
func (j ChatLogJob) Marshal() ([]byte, error) {
	return json.Marshal(j)
}

// UnmarshalChatLogJob decodes a job payload.
func UnmarshalChatLogJob(data []byte) (ChatLogJob, error) {
	var j ChatLogJob
	err := json.Unmarshal(data, &j)
	return j, err
}
