package repository

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
)

type ProfileRepository interface {
	// Upsert inserts a new profile or fully replaces the mutable fields of an
	// existing one, keyed by user id. Profiles are never hard-deleted.
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	UpdatePhone(ctx context.Context, userID, phone string) error
	// ListAll returns every profile in discovery order (created_at, then
	// user id), which is the tie-break order for ranking.
	ListAll(ctx context.Context) ([]*domain.Profile, error)
}
