package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Insert appends a message and returns its assigned id.
func (r *MessageRepository) Insert(ctx context.Context, msg *model.Message) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (group_id, sender_username, content, sent_at, type, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, msg.GroupID, msg.Sender, msg.Content, msg.SentAt, msg.Type, msg.Read).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CountLive counts the unarchived messages for a group.
func (r *MessageRepository) CountLive(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE group_id = $1
	`, groupID).Scan(&count)
	return count, err
}

// Oldest returns the n chronologically oldest live messages, ascending.
func (r *MessageRepository) Oldest(ctx context.Context, groupID int64, n int) ([]model.Message, error) {
	return r.queryMessages(ctx, `
		SELECT id, group_id, sender_username, content, sent_at, type, is_read
		FROM messages
		WHERE group_id = $1
		ORDER BY sent_at ASC, id ASC
		LIMIT $2
	`, groupID, n)
}

// MostRecent returns the n chronologically newest live messages, descending.
func (r *MessageRepository) MostRecent(ctx context.Context, groupID int64, n int) ([]model.Message, error) {
	return r.queryMessages(ctx, `
		SELECT id, group_id, sender_username, content, sent_at, type, is_read
		FROM messages
		WHERE group_id = $1
		ORDER BY sent_at DESC, id DESC
		LIMIT $2
	`, groupID, n)
}

func (r *MessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Sender, &m.Content, &m.SentAt, &m.Type, &m.Read); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountBatches counts the archived batches for a group.
func (r *MessageRepository) CountBatches(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM message_batches WHERE group_id = $1
	`, groupID).Scan(&count)
	return count, err
}

// MaxBatchNumber returns the highest batch number for a group, 0 if none.
func (r *MessageRepository) MaxBatchNumber(ctx context.Context, groupID int64) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(batch_number), 0) FROM message_batches WHERE group_id = $1
	`, groupID).Scan(&max)
	return max, err
}

// BatchByNumber loads one batch with its message snapshot decoded. Returns
// nil when the batch does not exist.
func (r *MessageRepository) BatchByNumber(ctx context.Context, groupID int64, number int) (*model.MessageBatch, error) {
	batch := &model.MessageBatch{}
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, group_id, batch_number, created_at, messages
		FROM message_batches
		WHERE group_id = $1 AND batch_number = $2
	`, groupID, number).Scan(&batch.ID, &batch.GroupID, &batch.BatchNumber, &batch.CreatedAt, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &batch.Messages); err != nil {
		return nil, fmt.Errorf("decode batch %d messages: %w", number, err)
	}
	return batch, nil
}

// ArchiveBatch saves a batch snapshot and deletes its source messages in a
// single transaction. Either both happen or neither does; a message is
// never visible in both the live table and a batch.
func (r *MessageRepository) ArchiveBatch(ctx context.Context, groupID int64, number int, msgs []model.Message) error {
	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode batch messages: %w", err)
	}
	ids := lo.Map(msgs, func(m model.Message, _ int) int64 { return m.ID })

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO message_batches (group_id, batch_number, created_at, messages)
		VALUES ($1, $2, NOW(), $3)
	`, groupID, number, payload); err != nil {
		return fmt.Errorf("insert batch %d: %w", number, err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM messages WHERE id = ANY($1)
	`, ids); err != nil {
		return fmt.Errorf("delete archived messages: %w", err)
	}

	return tx.Commit(ctx)
}
