package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchEdgeRepository struct {
	db *sqlx.DB
}

func NewMatchEdgeRepository(db *sqlx.DB) repository.MatchEdgeRepository {
	return &matchEdgeRepository{db: db}
}

func (r *matchEdgeRepository) UpsertEdges(ctx context.Context, edges []*domain.MatchEdge) error {
	if len(edges) == 0 {
		return nil
	}

	query := `
		INSERT INTO match_edges (user_a_id, user_b_id, score, a_in_b_top3, b_in_a_top3, mutual_top3)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET
			score = EXCLUDED.score,
			a_in_b_top3 = EXCLUDED.a_in_b_top3,
			b_in_a_top3 = EXCLUDED.b_in_a_top3,
			mutual_top3 = EXCLUDED.mutual_top3,
			updated_at = CURRENT_TIMESTAMP
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, edge := range edges {
		// Pairs are normalized by the caller; enforce it here too so a bad
		// edge never bypasses the unique constraint.
		userAID, userBID := domain.NormalizePair(edge.UserAID, edge.UserBID)
		aInB, bInA := edge.AInBTop3, edge.BInATop3
		if userAID != edge.UserAID {
			aInB, bInA = bInA, aInB
		}
		if _, err := tx.ExecContext(ctx, query, userAID, userBID, edge.Score, aInB, bInA, aInB && bInA); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *matchEdgeRepository) GetByUsers(ctx context.Context, userAID, userBID string) (*domain.MatchEdge, error) {
	userAID, userBID = domain.NormalizePair(userAID, userBID)

	var edge domain.MatchEdge
	query := `SELECT * FROM match_edges WHERE user_a_id = $1 AND user_b_id = $2`
	err := r.db.GetContext(ctx, &edge, query, userAID, userBID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &edge, nil
}
