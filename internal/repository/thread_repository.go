package repository

import (
	"context"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
)

type ThreadRepository interface {
	// GetOrCreate inserts the thread, or returns the existing row for the same
	// normalized pair when the unique constraint fires. created reports which
	// happened. Exactly one thread can ever exist per pair, even under a race
	// where both members create simultaneously.
	GetOrCreate(ctx context.Context, thread *domain.ChatThread) (result *domain.ChatThread, created bool, err error)
	GetByID(ctx context.Context, threadID string) (*domain.ChatThread, error)
	// GetByUsers returns the thread for the pair, accepted in either order.
	// ErrThreadNotFound when the pair never opened one.
	GetByUsers(ctx context.Context, userAID, userBID string) (*domain.ChatThread, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ThreadWithLastMessage, error)
	UpdateIcebreakers(ctx context.Context, threadID string, icebreakers []string) error
	// MarkRevealed stamps revealed_at on every thread that has not been
	// revealed yet. Called once when the operator enables reveal.
	MarkRevealed(ctx context.Context, at time.Time) error
}
