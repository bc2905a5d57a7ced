package postgres

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (thread_id, sender_user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, message.ThreadID, message.SenderUserID, message.Body).
		Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) ListByThread(ctx context.Context, threadID string, limit int) ([]*domain.Message, error) {
	// Keep the most recent `limit` rows but return them in creation order.
	var messages []*domain.Message
	query := `
		SELECT * FROM (
			SELECT * FROM messages
			WHERE thread_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, threadID, limit)
	return messages, err
}
