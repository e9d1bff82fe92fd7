package handler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func TestAdmin_RequiresKey(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, _ := a.do(t, "GET", "/api/admin/stats", nil, nil)
	req.Equal(403, resp.StatusCode)

	resp, _ = a.do(t, "GET", "/api/admin/stats", nil, map[string]string{"X-Admin-Key": "wrong"})
	req.Equal(403, resp.StatusCode)
}

func TestAdmin_Stats(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "GET", "/api/admin/stats", nil, adminHeaders())
	req.Equal(200, resp.StatusCode)

	stats := decode[map[string]int64](t, raw)
	req.Equal(int64(3), stats["users_total"])
	req.Equal(int64(1), stats["groups_total"])
	req.Equal(int64(0), stats["connections_online"])
}

func TestAdmin_Announce(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	body := map[string]string{"message": "server restart at 22:00"}
	resp, raw := a.do(t, "POST", fmt.Sprintf("/api/admin/groups/%d/announce", a.group.ID), body, adminHeaders())
	req.Equal(200, resp.StatusCode)

	payload := decode[model.MessagePayload](t, raw)
	req.Equal(model.TypeSystem, payload.Type)
	req.Nil(payload.Sender)
	req.Equal("server restart at 22:00", payload.Content)

	// The announcement lands in the group's history.
	n, err := a.store.CountLive(context.Background(), a.group.ID)
	req.NoError(err)
	req.Equal(int64(1), n)
}

func TestAdmin_AnnounceErrors(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, _ := a.do(t, "POST", "/api/admin/groups/9999/announce", map[string]string{"message": "x"}, adminHeaders())
	req.Equal(404, resp.StatusCode)

	resp, _ = a.do(t, "POST", fmt.Sprintf("/api/admin/groups/%d/announce", a.group.ID), map[string]string{}, adminHeaders())
	req.Equal(400, resp.StatusCode)
}
