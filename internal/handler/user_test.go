package handler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

func TestRegisterUser(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "POST", "/api/users/register", model.RegisterRequest{
		Username:    "carol",
		FirstName:   "Carol",
		LastName:    "Jones",
		PhoneNumber: "+15550100",
	}, nil)
	req.Equal(201, resp.StatusCode)

	user := decode[model.User](t, raw)
	req.NotZero(user.ID)
	req.Equal("carol", user.Username)
	req.True(user.IsActive)
}

func TestRegisterUser_Conflict(t *testing.T) {
	a := newTestApp(t)
	resp, _ := a.do(t, "POST", "/api/users/register", model.RegisterRequest{
		Username:  "alice",
		FirstName: "Alice",
	}, nil)
	require.Equal(t, 409, resp.StatusCode)
}

func TestRegisterUser_Validation(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	// Username too short.
	resp, _ := a.do(t, "POST", "/api/users/register", model.RegisterRequest{Username: "ab", FirstName: "A"}, nil)
	req.Equal(400, resp.StatusCode)

	// Missing first name.
	resp, _ = a.do(t, "POST", "/api/users/register", model.RegisterRequest{Username: "dave"}, nil)
	req.Equal(400, resp.StatusCode)
}

func TestGetUser(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	resp, raw := a.do(t, "GET", "/api/users/alice", nil, nil)
	req.Equal(200, resp.StatusCode)
	user := decode[model.User](t, raw)
	req.Equal("alice", user.Username)

	resp, _ = a.do(t, "GET", "/api/users/nobody", nil, nil)
	req.Equal(404, resp.StatusCode)
}
