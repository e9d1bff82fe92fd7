package service

import (
	"context"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

// MessageStore is the persistence contract the chat core relies on.
// Implementations must assign strictly increasing ids on insert, and
// ArchiveBatch must save the batch and delete its source messages inside
// a single transactional boundary.
type MessageStore interface {
	Insert(ctx context.Context, msg *model.Message) (int64, error)
	CountLive(ctx context.Context, groupID int64) (int64, error)
	Oldest(ctx context.Context, groupID int64, n int) ([]model.Message, error)
	MostRecent(ctx context.Context, groupID int64, n int) ([]model.Message, error)

	CountBatches(ctx context.Context, groupID int64) (int64, error)
	MaxBatchNumber(ctx context.Context, groupID int64) (int, error)
	BatchByNumber(ctx context.Context, groupID int64, number int) (*model.MessageBatch, error)
	ArchiveBatch(ctx context.Context, groupID int64, number int, msgs []model.Message) error
}

// Membership is the group-membership collaborator.
type Membership interface {
	IsMember(ctx context.Context, groupID int64, username string) (bool, error)
	MembersOf(ctx context.Context, groupID int64) ([]string, error)
}

// GroupLookup reports whether a group exists.
type GroupLookup interface {
	GroupExists(ctx context.Context, groupID int64) (bool, error)
}

// GroupStore is the full group persistence surface used by GroupService.
type GroupStore interface {
	GroupLookup
	Membership
	CreateGroup(ctx context.Context, name, creator string) (*model.Group, error)
	GroupByID(ctx context.Context, groupID int64) (*model.Group, error)
	GroupsFor(ctx context.Context, username string) ([]model.Group, error)
	CountGroups(ctx context.Context) (int64, error)
}

// UserStore is the user persistence surface.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
}

// UserLookup is the slice of UserStore the message path needs.
type UserLookup interface {
	UserExists(ctx context.Context, username string) (bool, error)
}
