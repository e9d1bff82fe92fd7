package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// CreateGroup inserts a group and adds the creator as its first member.
func (r *GroupRepository) CreateGroup(ctx context.Context, name, creator string) (*model.Group, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create group tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var creatorID int64
	if err := tx.QueryRow(ctx, `
		SELECT id FROM users WHERE username = $1
	`, creator).Scan(&creatorID); err != nil {
		return nil, fmt.Errorf("resolve creator %s: %w", creator, err)
	}

	group := &model.Group{CreatedBy: creator}
	if err := tx.QueryRow(ctx, `
		INSERT INTO groups (name, created_by)
		VALUES ($1, $2)
		RETURNING id, name, created_at
	`, name, creatorID).Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)
	`, group.ID, creatorID); err != nil {
		return nil, fmt.Errorf("add creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return group, nil
}

// GroupByID returns nil when the group does not exist.
func (r *GroupRepository) GroupByID(ctx context.Context, groupID int64) (*model.Group, error) {
	group := &model.Group{}
	err := r.pool.QueryRow(ctx, `
		SELECT g.id, g.name, u.username, g.created_at
		FROM groups g
		JOIN users u ON u.id = g.created_by
		WHERE g.id = $1
	`, groupID).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}

func (r *GroupRepository) GroupExists(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)
	`, groupID).Scan(&exists)
	return exists, err
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID int64, username string) (bool, error) {
	var member bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM group_members gm
			JOIN users u ON u.id = gm.user_id
			WHERE gm.group_id = $1 AND u.username = $2
		)
	`, groupID, username).Scan(&member)
	return member, err
}

func (r *GroupRepository) MembersOf(ctx context.Context, groupID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.username
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY u.username
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		members = append(members, name)
	}
	return members, rows.Err()
}

func (r *GroupRepository) GroupsFor(ctx context.Context, username string) ([]model.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.name, cu.username, g.created_at
		FROM groups g
		JOIN users cu ON cu.id = g.created_by
		JOIN group_members gm ON gm.group_id = g.id
		JOIN users u ON u.id = gm.user_id
		WHERE u.username = $1
		ORDER BY g.created_at DESC
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) CountGroups(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM groups`).Scan(&count)
	return count, err
}
