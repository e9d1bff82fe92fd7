package model

import "time"

const (
	TypeChat   = "CHAT"
	TypeJoin   = "JOIN"
	TypeLeave  = "LEAVE"
	TypeSystem = "SYSTEM"
)

// Message is a stored chat message row. Sender is nil for system-authored
// messages (SYSTEM, LEAVE), which are persisted as already read.
type Message struct {
	ID      int64     `json:"id"`
	GroupID int64     `json:"groupId"`
	Sender  *string   `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
	Type    string    `json:"type"`
	Read    bool      `json:"read"`
}

// Payload converts a stored message into the wire shape broadcast to
// connections and returned from the history endpoint.
func (m Message) Payload() MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		Content:   m.Content,
		Sender:    m.Sender,
		Type:      m.Type,
		Timestamp: m.SentAt.UTC().Format(time.RFC3339Nano),
		GroupID:   m.GroupID,
	}
}

// ChatEvent is the inbound websocket payload.
type ChatEvent struct {
	Type    string  `json:"type"`
	GroupID int64   `json:"groupId"`
	Sender  *string `json:"sender"`
	Content string  `json:"content"`
}

// MessagePayload is the outbound broadcast shape.
type MessagePayload struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Sender    *string `json:"sender"`
	Type      string  `json:"type"`
	Timestamp string  `json:"timestamp"`
	GroupID   int64   `json:"groupId"`
}

// MessagePage is one page of a group's history, newest first.
type MessagePage struct {
	Messages    []MessagePayload `json:"messages"`
	HasMore     bool             `json:"hasMore"`
	Total       int64            `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
}
