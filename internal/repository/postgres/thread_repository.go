package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type threadRepository struct {
	db *sqlx.DB
}

func NewThreadRepository(db *sqlx.DB) repository.ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) GetOrCreate(ctx context.Context, thread *domain.ChatThread) (*domain.ChatThread, bool, error) {
	// Caller builds the row with a normalized pair; the unique constraint on
	// (user_a_id, user_b_id) makes this safe when both members race.
	query := `
		INSERT INTO chat_threads (id, user_a_id, user_b_id, alias_a, alias_b)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		thread.ID, thread.UserAID, thread.UserBID, thread.AliasA, thread.AliasB,
	).Scan(&thread.CreatedAt)
	if err == nil {
		return thread, true, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		existing, getErr := r.GetByUsers(ctx, thread.UserAID, thread.UserBID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}

	return nil, false, err
}

func (r *threadRepository) GetByUsers(ctx context.Context, userAID, userBID string) (*domain.ChatThread, error) {
	userAID, userBID = domain.NormalizePair(userAID, userBID)

	var thread domain.ChatThread
	query := `SELECT * FROM chat_threads WHERE user_a_id = $1 AND user_b_id = $2`
	err := r.db.GetContext(ctx, &thread, query, userAID, userBID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) GetByID(ctx context.Context, threadID string) (*domain.ChatThread, error) {
	var thread domain.ChatThread
	query := `SELECT * FROM chat_threads WHERE id = $1`
	err := r.db.GetContext(ctx, &thread, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ThreadWithLastMessage, error) {
	var threads []*domain.ThreadWithLastMessage
	query := `
		SELECT t.*, m.created_at AS last_message_at, m.body AS last_message_preview
		FROM chat_threads t
		LEFT JOIN LATERAL (
			SELECT created_at, body
			FROM messages
			WHERE thread_id = t.id
			ORDER BY id DESC
			LIMIT 1
		) m ON true
		WHERE t.user_a_id = $1 OR t.user_b_id = $1
		ORDER BY COALESCE(m.created_at, t.created_at) DESC
	`
	err := r.db.SelectContext(ctx, &threads, query, userID)
	return threads, err
}

func (r *threadRepository) UpdateIcebreakers(ctx context.Context, threadID string, icebreakers []string) error {
	query := `UPDATE chat_threads SET icebreakers = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(icebreakers), threadID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrThreadNotFound
	}
	return nil
}

func (r *threadRepository) MarkRevealed(ctx context.Context, at time.Time) error {
	query := `UPDATE chat_threads SET revealed_at = $1 WHERE revealed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, at)
	return err
}
