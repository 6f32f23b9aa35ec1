package models

import "time"

// UsageHistory is an immutable event recording that a prompt was invoked
// against some target (an AI service name, "clipboard", ...). Events are
// append-only: no update or delete is exposed anywhere.
type UsageHistory struct {
	ID        string         `json:"id"`
	PromptID  string         `json:"promptId"`
	Target    *string        `json:"target"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// InsertUsageHistory is the validated create payload for a usage event.
// The timestamp is always server-assigned.
type InsertUsageHistory struct {
	PromptID string         `json:"promptId"`
	Target   *string        `json:"target"`
	Metadata map[string]any `json:"metadata"`
}
