package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/middleware"
	"github.com/Ak1Gupta/Socket-Backend/internal/model"
	"github.com/Ak1Gupta/Socket-Backend/internal/repository"
	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

const testAdminKey = "test-admin-key"

// testApp is a full route tree on the in-memory store, mirroring the wiring
// in cmd/server. One group "general" with members alice and bob; mallory is
// registered but not a member.
type testApp struct {
	app      *fiber.App
	store    *repository.MemoryStore
	group    *model.Group
	hub      *service.Hub
	messages *service.MessageService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()
	log := zerolog.Nop()

	store := repository.NewMemoryStore()
	for _, name := range []string{"alice", "bob", "mallory"} {
		_, err := store.CreateUser(ctx, &model.User{Username: name, FirstName: name, IsActive: true})
		req.NoError(err)
	}
	group, err := store.CreateGroup(ctx, "general", "alice")
	req.NoError(err)
	store.AddMember(group.ID, "bob")

	registry := service.NewRegistry()
	archiver := service.NewArchiver(store, 10, log)
	messages := service.NewMessageService(store, store, store, store, archiver, log)
	hub := service.NewHub(registry, messages, store, log)
	history := service.NewHistoryService(store, store, store, store, 10, log)
	groupSvc := service.NewGroupService(store, store)
	userSvc := service.NewUserService(store)

	users := NewUserHandler(userSvc)
	groups := NewGroupHandler(groupSvc)
	msgs := NewMessageHandler(history)
	admin := NewAdminHandler(store, store, hub)
	ws := NewWSHandler(registry, hub, messages, store, store, 16, log)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/users/register", users.Register)
	api.Get("/users/:username", users.Get)
	api.Post("/groups", groups.Create)
	api.Get("/groups/user/:username", groups.GetUserGroups)
	api.Get("/groups/:id", groups.Get)
	api.Get("/groups/:id/members", groups.GetMembers)
	api.Get("/messages/group/:groupId", msgs.GetGroupMessages)

	adm := api.Group("/admin", middleware.AdminKey(testAdminKey))
	adm.Get("/stats", admin.Stats)
	adm.Post("/groups/:id/announce", admin.Announce)

	app.Get("/ws", ws.Upgrade)

	return &testApp{app: app, store: store, group: group, hub: hub, messages: messages}
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
