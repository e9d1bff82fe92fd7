package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
	"github.com/Ak1Gupta/Socket-Backend/internal/repository"
)

// testEnv wires the chat core onto the in-memory store with one group:
// alice (creator) and bob are members, mallory is a registered non-member.
type testEnv struct {
	store    *repository.MemoryStore
	group    *model.Group
	archiver *Archiver
	messages *MessageService
	history  *HistoryService
}

func newTestEnv(t *testing.T, batchSize int) *testEnv {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()

	store := repository.NewMemoryStore()
	for _, name := range []string{"alice", "bob", "mallory"} {
		_, err := store.CreateUser(ctx, &model.User{Username: name, FirstName: name, IsActive: true})
		req.NoError(err)
	}

	group, err := store.CreateGroup(ctx, "general", "alice")
	req.NoError(err)
	store.AddMember(group.ID, "bob")

	log := zerolog.Nop()
	archiver := NewArchiver(store, batchSize, log)
	messages := NewMessageService(store, store, store, store, archiver, log)
	history := NewHistoryService(store, store, store, store, batchSize, log)

	return &testEnv{
		store:    store,
		group:    group,
		archiver: archiver,
		messages: messages,
		history:  history,
	}
}

// sendChat persists one CHAT message from sender and returns it.
func (e *testEnv) sendChat(t *testing.T, sender, content string) *model.Message {
	t.Helper()
	msg, err := e.messages.SaveEvent(context.Background(), model.ChatEvent{
		Type:    model.TypeChat,
		GroupID: e.group.ID,
		Sender:  &sender,
		Content: content,
	})
	require.NoError(t, err)
	return msg
}
