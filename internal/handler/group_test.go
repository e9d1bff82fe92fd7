package handler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

func TestCreateGroup(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "POST", "/api/groups", model.CreateGroupRequest{Name: "weekend plans", Username: "bob"}, nil)
	req.Equal(201, resp.StatusCode)

	group := decode[model.Group](t, raw)
	req.NotZero(group.ID)
	req.Equal("weekend plans", group.Name)
	req.Equal("bob", group.CreatedBy)

	// Creator is the first member.
	resp, raw = a.do(t, "GET", fmt.Sprintf("/api/groups/%d/members", group.ID), nil, nil)
	req.Equal(200, resp.StatusCode)
	body := decode[map[string][]string](t, raw)
	req.Equal([]string{"bob"}, body["members"])
}

func TestCreateGroup_Errors(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, _ := a.do(t, "POST", "/api/groups", model.CreateGroupRequest{Name: "  ", Username: "alice"}, nil)
	req.Equal(400, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/groups", model.CreateGroupRequest{Name: "x"}, nil)
	req.Equal(400, resp.StatusCode)

	resp, _ = a.do(t, "POST", "/api/groups", model.CreateGroupRequest{Name: "x", Username: "nobody"}, nil)
	req.Equal(404, resp.StatusCode)
}

func TestGetGroup(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "GET", fmt.Sprintf("/api/groups/%d", a.group.ID), nil, nil)
	req.Equal(200, resp.StatusCode)
	group := decode[model.Group](t, raw)
	req.Equal("general", group.Name)

	resp, _ = a.do(t, "GET", "/api/groups/9999", nil, nil)
	req.Equal(404, resp.StatusCode)

	resp, _ = a.do(t, "GET", "/api/groups/zero", nil, nil)
	req.Equal(400, resp.StatusCode)
}

func TestGetUserGroups(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "GET", "/api/groups/user/alice", nil, nil)
	req.Equal(200, resp.StatusCode)
	body := decode[map[string][]model.Group](t, raw)
	req.Len(body["groups"], 1)
	req.Equal(a.group.ID, body["groups"][0].ID)

	// Member of nothing still gets an empty list, not null.
	resp, raw = a.do(t, "GET", "/api/groups/user/mallory", nil, nil)
	req.Equal(200, resp.StatusCode)
	body = decode[map[string][]model.Group](t, raw)
	req.NotNil(body["groups"])
	req.Empty(body["groups"])

	resp, _ = a.do(t, "GET", "/api/groups/user/nobody", nil, nil)
	req.Equal(404, resp.StatusCode)
}
