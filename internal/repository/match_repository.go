package repository

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
)

type MatchEdgeRepository interface {
	// UpsertEdges replaces the stored state for each normalized pair.
	UpsertEdges(ctx context.Context, edges []*domain.MatchEdge) error
	// GetByUsers accepts the pair in either order and returns nil, nil when no
	// edge has been computed for it yet.
	GetByUsers(ctx context.Context, userAID, userBID string) (*domain.MatchEdge, error)
}
