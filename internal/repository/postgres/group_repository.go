package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByKey(ctx context.Context, key domain.Category) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT * FROM groups WHERE group_key = $1`
	err := r.db.GetContext(ctx, &group, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotInGroup
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByThreadID(ctx context.Context, threadID string) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT * FROM groups WHERE thread_id = $1`
	err := r.db.GetContext(ctx, &group, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetMember(ctx context.Context, userID string) (*domain.GroupMember, error) {
	var member domain.GroupMember
	query := `SELECT * FROM group_members WHERE user_id = $1`
	err := r.db.GetContext(ctx, &member, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *groupRepository) UpsertMember(ctx context.Context, member *domain.GroupMember) error {
	query := `
		INSERT INTO group_members (user_id, group_key, alias)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			group_key = EXCLUDED.group_key,
			alias = EXCLUDED.alias,
			assigned_at = CASE
				WHEN group_members.group_key = EXCLUDED.group_key THEN group_members.assigned_at
				ELSE CURRENT_TIMESTAMP
			END
		RETURNING assigned_at
	`
	return r.db.QueryRowContext(ctx, query, member.UserID, member.GroupKey, member.Alias).
		Scan(&member.AssignedAt)
}

func (r *groupRepository) MemberCount(ctx context.Context, key domain.Category) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM group_members WHERE group_key = $1`
	err := r.db.GetContext(ctx, &count, query, key)
	return count, err
}
