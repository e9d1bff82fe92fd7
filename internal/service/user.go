package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

var (
	ErrUserExists      = errors.New("username already taken")
	ErrInvalidUsername = errors.New("username must be 3-32 alphanumeric characters")
	ErrMissingName     = errors.New("first name is required")

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
)

// UserService handles signup and profile lookup. Authentication and OTP
// verification live with the external identity provider; usernames here are
// taken as already verified.
type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if !usernameRe.MatchString(req.Username) {
		return nil, ErrInvalidUsername
	}
	if req.FirstName == "" {
		return nil, ErrMissingName
	}

	user, err := s.store.CreateUser(ctx, &model.User{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique") {
			return nil, ErrUserExists
		}
		return nil, storeErr("create user", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, storeErr("user lookup", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
