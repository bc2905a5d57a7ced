package repository

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
)

type MessageRepository interface {
	// Create appends the message and fills in the server-assigned id and
	// creation timestamp.
	Create(ctx context.Context, message *domain.Message) error
	// ListByThread returns up to limit messages in creation order. When the
	// thread holds more, the most recent ones win.
	ListByThread(ctx context.Context, threadID string, limit int) ([]*domain.Message, error)
}
