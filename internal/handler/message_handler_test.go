package handler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

func postChat(t *testing.T, a *testApp, sender, content string) {
	t.Helper()
	_, err := a.messages.SaveEvent(context.Background(), model.ChatEvent{
		Type:    model.TypeChat,
		GroupID: a.group.ID,
		Sender:  &sender,
		Content: content,
	})
	require.NoError(t, err)
}

func TestGetGroupMessages_Page(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	for i := 1; i <= 13; i++ {
		postChat(t, a, "alice", fmt.Sprintf("msg %d", i))
	}

	resp, raw := a.do(t, "GET", fmt.Sprintf("/api/messages/group/%d?username=bob&page=1&limit=5", a.group.ID), nil, nil)
	req.Equal(200, resp.StatusCode)

	page := decode[model.MessagePage](t, raw)
	req.Len(page.Messages, 5)
	req.Equal("msg 13", page.Messages[0].Content)
	req.Equal("msg 9", page.Messages[4].Content)
	req.True(page.HasMore)
	req.Equal(int64(13), page.Total)
	req.Equal(1, page.CurrentPage)
	req.Equal(3, page.TotalPages)
}

func TestGetGroupMessages_NonMember(t *testing.T) {
	a := newTestApp(t)
	resp, _ := a.do(t, "GET", fmt.Sprintf("/api/messages/group/%d?username=mallory", a.group.ID), nil, nil)
	require.Equal(t, 403, resp.StatusCode)
}

func TestGetGroupMessages_NotFound(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, _ := a.do(t, "GET", "/api/messages/group/9999?username=alice", nil, nil)
	req.Equal(404, resp.StatusCode)

	resp, _ = a.do(t, "GET", fmt.Sprintf("/api/messages/group/%d?username=nobody", a.group.ID), nil, nil)
	req.Equal(404, resp.StatusCode)
}

func TestGetGroupMessages_BadRequest(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, _ := a.do(t, "GET", "/api/messages/group/abc?username=alice", nil, nil)
	req.Equal(400, resp.StatusCode)

	resp, _ = a.do(t, "GET", fmt.Sprintf("/api/messages/group/%d", a.group.ID), nil, nil)
	req.Equal(400, resp.StatusCode)
}
