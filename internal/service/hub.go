package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Ak1Gupta/Socket-Backend/internal/metrics"
	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

// Hub fans messages out to registered connections. Sends are fire-and-forget
// per connection: a full or broken connection is skipped, never retried, and
// never blocks delivery to the rest. Cleanup of dead connections belongs to
// the session-close handler, not the hub.
type Hub struct {
	registry *Registry
	messages *MessageService
	members  Membership
	log      zerolog.Logger
}

func NewHub(registry *Registry, messages *MessageService, members Membership, log zerolog.Logger) *Hub {
	return &Hub{
		registry: registry,
		messages: messages,
		members:  members,
		log:      log.With().Str("component", "hub").Logger(),
	}
}

// BroadcastToGroup delivers payload to every connection currently in the
// group. Every recipient gets the identical bytes.
func (h *Hub) BroadcastToGroup(groupID int64, payload []byte) {
	h.registry.each(func(c *Connection) {
		if c.GroupID != groupID {
			return
		}
		h.deliver(c, payload)
	})
}

// BroadcastToMembers delivers payload to every connection whose username is
// in members, regardless of which group the connection joined. Used for
// system messages, which are scoped by group membership.
func (h *Hub) BroadcastToMembers(members []string, payload []byte) {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	h.registry.each(func(c *Connection) {
		if _, ok := set[c.Username]; !ok {
			return
		}
		h.deliver(c, payload)
	})
}

func (h *Hub) deliver(c *Connection, payload []byte) {
	if c.TrySend(payload) {
		metrics.BroadcastsSent.Inc()
		return
	}
	metrics.BroadcastsDropped.Inc()
	h.log.Warn().Str("connection_id", c.ID).Str("username", c.Username).Msg("send buffer full, dropping payload")
}

// SendSystem persists a system-authored message and then broadcasts it to
// the group's members. Persistence comes first so the history reader will
// replay the event; a broadcast failure never rolls it back.
func (h *Hub) SendSystem(ctx context.Context, groupID int64, content string) (*model.Message, error) {
	msg, err := h.messages.SaveSystem(ctx, groupID, content)
	if err != nil {
		return nil, err
	}

	names, err := h.members.MembersOf(ctx, groupID)
	if err != nil {
		h.log.Error().Err(err).Int64("group_id", groupID).Msg("members lookup failed, skipping broadcast")
		return msg, nil
	}

	payload, err := json.Marshal(msg.Payload())
	if err != nil {
		return msg, err
	}
	h.BroadcastToMembers(names, payload)
	return msg, nil
}

func (h *Hub) OnlineCount() int {
	return h.registry.Count()
}
