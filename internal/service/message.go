package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ak1Gupta/Socket-Backend/internal/metrics"
	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

// MessageService validates and persists inbound chat events and triggers
// best-effort compaction after each insert.
type MessageService struct {
	store    MessageStore
	groups   GroupLookup
	members  Membership
	users    UserLookup
	archiver *Archiver
	log      zerolog.Logger
}

func NewMessageService(store MessageStore, groups GroupLookup, members Membership, users UserLookup, archiver *Archiver, log zerolog.Logger) *MessageService {
	return &MessageService{
		store:    store,
		groups:   groups,
		members:  members,
		users:    users,
		archiver: archiver,
		log:      log.With().Str("component", "messages").Logger(),
	}
}

// SaveEvent persists an inbound event and returns the stored message.
// CHAT events require a registered sender who is a member of the group.
// All other types are persisted as system-authored: nil sender, read=true.
// JOIN events should be filtered out before this point.
func (s *MessageService) SaveEvent(ctx context.Context, ev model.ChatEvent) (*model.Message, error) {
	if err := validateEvent(ev); err != nil {
		return nil, err
	}

	exists, err := s.groups.GroupExists(ctx, ev.GroupID)
	if err != nil {
		return nil, storeErr("group lookup", err)
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	msg := &model.Message{
		GroupID: ev.GroupID,
		Content: ev.Content,
		SentAt:  time.Now().UTC(),
		Type:    ev.Type,
	}

	if ev.Type == model.TypeChat {
		sender := strings.TrimSpace(*ev.Sender)
		known, err := s.users.UserExists(ctx, sender)
		if err != nil {
			return nil, storeErr("user lookup", err)
		}
		if !known {
			return nil, ErrUserNotFound
		}
		member, err := s.members.IsMember(ctx, ev.GroupID, sender)
		if err != nil {
			return nil, storeErr("membership check", err)
		}
		if !member {
			return nil, ErrNotMember
		}
		msg.Sender = &sender
	} else {
		msg.Sender = nil
		msg.Read = true
	}

	id, err := s.store.Insert(ctx, msg)
	if err != nil {
		return nil, storeErr("insert message", err)
	}
	msg.ID = id
	metrics.MessagesStored.WithLabelValues(msg.Type).Inc()

	// Best-effort compaction: never fails the insert that triggered it.
	if err := s.archiver.Compact(ctx, ev.GroupID); err != nil {
		metrics.CompactionFailures.Inc()
		s.log.Error().Err(err).Int64("group_id", ev.GroupID).Msg("compaction failed, will retry on next insert")
	}

	return msg, nil
}

// SaveSystem persists a system-authored message for a group.
func (s *MessageService) SaveSystem(ctx context.Context, groupID int64, content string) (*model.Message, error) {
	return s.SaveEvent(ctx, model.ChatEvent{
		Type:    model.TypeSystem,
		GroupID: groupID,
		Content: content,
	})
}

func validateEvent(ev model.ChatEvent) error {
	switch ev.Type {
	case model.TypeChat, model.TypeLeave, model.TypeSystem:
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidEvent, ev.Type)
	}
	if ev.GroupID <= 0 {
		return fmt.Errorf("%w: missing groupId", ErrInvalidEvent)
	}
	if strings.TrimSpace(ev.Content) == "" {
		return fmt.Errorf("%w: missing content", ErrInvalidEvent)
	}
	if ev.Type == model.TypeChat && (ev.Sender == nil || strings.TrimSpace(*ev.Sender) == "") {
		return fmt.Errorf("%w: missing sender", ErrInvalidEvent)
	}
	return nil
}
