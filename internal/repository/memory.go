package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

// MemoryStore is a mutex-guarded in-memory implementation of the message,
// group and user stores. It backs local development when DATABASE_URL is
// unset, and the service tests. Semantics mirror the Postgres repositories:
// strictly increasing message ids and transaction-like ArchiveBatch.
type MemoryStore struct {
	mu sync.Mutex

	nextUserID  int64
	nextGroupID int64
	nextMsgID   int64

	users    map[string]model.User
	groups   map[int64]model.Group
	members  map[int64]map[string]struct{}
	messages map[int64][]model.Message
	batches  map[int64]map[int]model.MessageBatch
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]model.User),
		groups:   make(map[int64]model.Group),
		members:  make(map[int64]map[string]struct{}),
		messages: make(map[int64][]model.Message),
		batches:  make(map[int64]map[int]model.MessageBatch),
	}
}

// --- messages ---

func (s *MemoryStore) Insert(ctx context.Context, msg *model.Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMsgID++
	m := *msg
	m.ID = s.nextMsgID
	s.messages[m.GroupID] = append(s.messages[m.GroupID], m)
	return m.ID, nil
}

func (s *MemoryStore) CountLive(ctx context.Context, groupID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.messages[groupID])), nil
}

func (s *MemoryStore) Oldest(ctx context.Context, groupID int64, n int) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := sortedByTime(s.messages[groupID])
	if n < len(msgs) {
		msgs = msgs[:n]
	}
	return msgs, nil
}

func (s *MemoryStore) MostRecent(ctx context.Context, groupID int64, n int) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := sortedByTime(s.messages[groupID])
	// Reverse for newest-first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	if n < len(msgs) {
		msgs = msgs[:n]
	}
	return msgs, nil
}

func (s *MemoryStore) CountBatches(ctx context.Context, groupID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.batches[groupID])), nil
}

func (s *MemoryStore) MaxBatchNumber(ctx context.Context, groupID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for number := range s.batches[groupID] {
		if number > max {
			max = number
		}
	}
	return max, nil
}

func (s *MemoryStore) BatchByNumber(ctx context.Context, groupID int64, number int) (*model.MessageBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[groupID][number]
	if !ok {
		return nil, nil
	}
	out := batch
	out.Messages = append([]model.Message(nil), batch.Messages...)
	return &out, nil
}

func (s *MemoryStore) ArchiveBatch(ctx context.Context, groupID int64, number int, msgs []model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.batches[groupID][number]; exists {
		return fmt.Errorf("batch %d already exists for group %d", number, groupID)
	}

	archived := make(map[int64]struct{}, len(msgs))
	for _, m := range msgs {
		archived[m.ID] = struct{}{}
	}

	var remaining []model.Message
	for _, m := range s.messages[groupID] {
		if _, ok := archived[m.ID]; !ok {
			remaining = append(remaining, m)
		}
	}
	if len(s.messages[groupID])-len(remaining) != len(msgs) {
		return fmt.Errorf("archive batch %d: source messages missing from live store", number)
	}
	s.messages[groupID] = remaining

	if s.batches[groupID] == nil {
		s.batches[groupID] = make(map[int]model.MessageBatch)
	}
	s.batches[groupID][number] = model.MessageBatch{
		ID:          int64(number),
		GroupID:     groupID,
		BatchNumber: number,
		CreatedAt:   time.Now().UTC(),
		Messages:    append([]model.Message(nil), msgs...),
	}
	return nil
}

// --- groups ---

func (s *MemoryStore) CreateGroup(ctx context.Context, name, creator string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[creator]; !ok {
		return nil, fmt.Errorf("resolve creator %s: no such user", creator)
	}

	s.nextGroupID++
	group := model.Group{
		ID:        s.nextGroupID,
		Name:      name,
		CreatedBy: creator,
		CreatedAt: time.Now().UTC(),
	}
	s.groups[group.ID] = group
	s.members[group.ID] = map[string]struct{}{creator: {}}
	return &group, nil
}

func (s *MemoryStore) GroupByID(ctx context.Context, groupID int64) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, nil
	}
	return &group, nil
}

func (s *MemoryStore) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.groups[groupID]
	return ok, nil
}

func (s *MemoryStore) IsMember(ctx context.Context, groupID int64, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[groupID][username]
	return ok, nil
}

func (s *MemoryStore) MembersOf(ctx context.Context, groupID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for name := range s.members[groupID] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// AddMember exists for wiring test fixtures and dev seeding; the HTTP API
// does not expose membership changes.
func (s *MemoryStore) AddMember(groupID int64, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.members[groupID] == nil {
		s.members[groupID] = make(map[string]struct{})
	}
	s.members[groupID][username] = struct{}{}
}

func (s *MemoryStore) GroupsFor(ctx context.Context, username string) ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var groups []model.Group
	for id, names := range s.members {
		if _, ok := names[username]; ok {
			groups = append(groups, s.groups[id])
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (s *MemoryStore) CountGroups(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.groups)), nil
}

// --- users ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return nil, fmt.Errorf("duplicate key: username %s", user.Username)
	}

	s.nextUserID++
	u := *user
	u.ID = s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.Username] = u
	return &u, nil
}

func (s *MemoryStore) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) UserExists(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// sortedByTime copies and sorts ascending by sentAt, id as tiebreaker.
func sortedByTime(msgs []model.Message) []model.Message {
	out := append([]model.Message(nil), msgs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out
}
