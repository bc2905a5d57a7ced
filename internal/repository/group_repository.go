package repository

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
)

type GroupRepository interface {
	GetByKey(ctx context.Context, key domain.Category) (*domain.Group, error)
	GetByThreadID(ctx context.Context, threadID string) (*domain.Group, error)
	// GetMember returns nil, nil when the participant has no tribe yet.
	GetMember(ctx context.Context, userID string) (*domain.GroupMember, error)
	// UpsertMember replaces the participant's single membership row.
	// Reassigning to the same tribe is a no-op.
	UpsertMember(ctx context.Context, member *domain.GroupMember) error
	MemberCount(ctx context.Context, key domain.Category) (int, error)
}
