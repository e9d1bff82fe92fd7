package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

var ErrInvalidGroupName = errors.New("group name must be 1-64 characters")

// GroupService covers group creation and lookups. Membership changes past
// group creation are owned by an external collaborator; this service only
// ever reads membership.
type GroupService struct {
	store GroupStore
	users UserStore
}

func NewGroupService(store GroupStore, users UserStore) *GroupService {
	return &GroupService{store: store, users: users}
}

// Create makes a new group with the creator as its first member.
func (s *GroupService) Create(ctx context.Context, name, creator string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 64 {
		return nil, ErrInvalidGroupName
	}

	known, err := s.users.UserExists(ctx, creator)
	if err != nil {
		return nil, storeErr("user lookup", err)
	}
	if !known {
		return nil, ErrUserNotFound
	}

	group, err := s.store.CreateGroup(ctx, name, creator)
	if err != nil {
		return nil, storeErr("create group", err)
	}
	return group, nil
}

func (s *GroupService) ByID(ctx context.Context, groupID int64) (*model.Group, error) {
	group, err := s.store.GroupByID(ctx, groupID)
	if err != nil {
		return nil, storeErr("group lookup", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *GroupService) GroupsFor(ctx context.Context, username string) ([]model.Group, error) {
	known, err := s.users.UserExists(ctx, username)
	if err != nil {
		return nil, storeErr("user lookup", err)
	}
	if !known {
		return nil, ErrUserNotFound
	}

	groups, err := s.store.GroupsFor(ctx, username)
	if err != nil {
		return nil, storeErr("list groups", err)
	}
	return groups, nil
}

func (s *GroupService) Members(ctx context.Context, groupID int64) ([]string, error) {
	exists, err := s.store.GroupExists(ctx, groupID)
	if err != nil {
		return nil, storeErr("group lookup", err)
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	members, err := s.store.MembersOf(ctx, groupID)
	if err != nil {
		return nil, storeErr("list members", err)
	}
	return members, nil
}
