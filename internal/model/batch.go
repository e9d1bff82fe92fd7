package model

import "time"

// MessageBatch is an immutable archival snapshot of formerly-live messages.
// Messages are stored oldest-first, exactly as they left the live table.
// Batch numbers are per-group, contiguous, starting at 1.
type MessageBatch struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"groupId"`
	BatchNumber int       `json:"batchNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	Messages    []Message `json:"messages"`
}
