package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Ak1Gupta/Socket-Backend/internal/metrics"
	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// HistoryService composes the live message table and the archived batches
// into one reverse-chronological feed. Page 1 starts with the live messages
// (newest first) and is topped up from the newest batch; later pages map
// onto batch offsets. The reader does not take a snapshot: a message can
// move from live to batched between the count and the fetch, so each page
// is de-duplicated by message id instead.
type HistoryService struct {
	store     MessageStore
	groups    GroupLookup
	members   Membership
	users     UserLookup
	batchSize int
	log       zerolog.Logger
}

func NewHistoryService(store MessageStore, groups GroupLookup, members Membership, users UserLookup, batchSize int, log zerolog.Logger) *HistoryService {
	if batchSize < 2 {
		batchSize = 10
	}
	return &HistoryService{
		store:     store,
		groups:    groups,
		members:   members,
		users:     users,
		batchSize: batchSize,
		log:       log.With().Str("component", "history").Logger(),
	}
}

// GetPage returns one page of a group's history, newest first. The
// requesting user must be a member of the group.
func (s *HistoryService) GetPage(ctx context.Context, groupID int64, username string, page, limit int) (*model.MessagePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	exists, err := s.groups.GroupExists(ctx, groupID)
	if err != nil {
		return nil, storeErr("group lookup", err)
	}
	if !exists {
		return nil, ErrGroupNotFound
	}
	known, err := s.users.UserExists(ctx, username)
	if err != nil {
		return nil, storeErr("user lookup", err)
	}
	if !known {
		return nil, ErrUserNotFound
	}
	member, err := s.members.IsMember(ctx, groupID, username)
	if err != nil {
		return nil, storeErr("membership check", err)
	}
	if !member {
		return nil, ErrNotMember
	}

	metrics.HistoryRequests.Inc()

	liveCount, err := s.store.CountLive(ctx, groupID)
	if err != nil {
		return nil, storeErr("count live messages", err)
	}
	numBatches, err := s.store.CountBatches(ctx, groupID)
	if err != nil {
		return nil, storeErr("count batches", err)
	}

	// Batches hold exactly batchSize messages each, so the archived part of
	// the feed has a fixed, computable length.
	total := liveCount + numBatches*int64(s.batchSize)
	offset := int64(page-1) * int64(limit)

	out := make([]model.Message, 0, limit)

	if offset < liveCount {
		live, err := s.store.MostRecent(ctx, groupID, int(offset)+limit)
		if err != nil {
			return nil, storeErr("fetch live messages", err)
		}
		if int64(len(live)) > offset {
			tail := live[offset:]
			if len(tail) > limit {
				tail = tail[:limit]
			}
			out = append(out, tail...)
		}
	}

	if need := limit - len(out); need > 0 && numBatches > 0 {
		archOffset := offset - liveCount
		if archOffset < 0 {
			archOffset = 0
		}
		got, err := s.readArchived(ctx, groupID, numBatches, archOffset, need)
		if err != nil {
			return nil, err
		}
		out = append(out, got...)
	}

	out = dedupByID(out)

	payloads := lo.Map(out, func(m model.Message, _ int) model.MessagePayload {
		return m.Payload()
	})

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.MessagePage{
		Messages:    payloads,
		HasMore:     offset+int64(len(out)) < total,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// readArchived walks the archived feed starting at archOffset (0 = first
// message of the newest batch, presented newest-first) and collects up to
// need messages, crossing batch boundaries as required.
func (s *HistoryService) readArchived(ctx context.Context, groupID, numBatches, archOffset int64, need int) ([]model.Message, error) {
	var out []model.Message
	size := int64(s.batchSize)

	for need > 0 {
		idx := archOffset / size // 0 = newest batch
		number := int(numBatches - idx)
		if number < 1 {
			break
		}

		batch, err := s.store.BatchByNumber(ctx, groupID, number)
		if err != nil {
			return nil, storeErr("fetch batch", err)
		}
		if batch == nil {
			break
		}

		// Stored oldest-first; presented newest-first.
		msgs := make([]model.Message, len(batch.Messages))
		for i, m := range batch.Messages {
			msgs[len(msgs)-1-i] = m
		}

		inner := int(archOffset % size)
		if inner >= len(msgs) {
			break
		}
		take := msgs[inner:]
		if len(take) > need {
			take = take[:need]
		}
		out = append(out, take...)
		need -= len(take)
		archOffset += int64(len(take))
	}

	return out, nil
}

// dedupByID drops repeated ids, keeping first occurrence. Covers the
// unsynchronized live-to-batch move described above.
func dedupByID(msgs []model.Message) []model.Message {
	seen := make(map[int64]struct{}, len(msgs))
	out := msgs[:0]
	for _, m := range msgs {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
