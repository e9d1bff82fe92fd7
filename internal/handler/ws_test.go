package handler

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

// wsRequest fakes the client side of a websocket handshake far enough for
// Upgrade's pre-checks to run.
func wsRequest(t *testing.T, a *testApp, path string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestWSUpgrade_RequiresWebsocket(t *testing.T) {
	a := newTestApp(t)
	resp, _ := a.do(t, "GET", fmt.Sprintf("/ws?username=alice&groupId=%d", a.group.ID), nil, nil)
	require.Equal(t, 426, resp.StatusCode)
}

func TestWSUpgrade_ValidatesParams(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	req.Equal(400, wsRequest(t, a, "/ws"))
	req.Equal(400, wsRequest(t, a, "/ws?username=alice"))
	req.Equal(400, wsRequest(t, a, fmt.Sprintf("/ws?groupId=%d", a.group.ID)))
	req.Equal(400, wsRequest(t, a, "/ws?username=alice&groupId=abc"))
}

func TestWSUpgrade_ChecksGroupAndMembership(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	req.Equal(404, wsRequest(t, a, "/ws?username=alice&groupId=9999"))
	req.Equal(403, wsRequest(t, a, fmt.Sprintf("/ws?username=mallory&groupId=%d", a.group.ID)))
}

func TestErrorMessage(t *testing.T) {
	req := require.New(t)

	req.Equal(service.ErrNotMember.Error(), errorMessage(service.ErrNotMember))
	req.Equal(service.ErrGroupNotFound.Error(), errorMessage(service.ErrGroupNotFound))
	req.Equal("message could not be stored, try again", errorMessage(&service.StoreError{Op: "insert message", Err: errors.New("connection reset")}))
	req.Equal("failed to process message", errorMessage(errors.New("boom")))
}
