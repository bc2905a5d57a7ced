package postgres

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
)

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	var settings domain.AppSettings
	query := `SELECT * FROM app_settings WHERE id = 1`
	err := r.db.GetContext(ctx, &settings, query)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) SetRevealEnabled(ctx context.Context, enabled bool) (*domain.AppSettings, error) {
	var settings domain.AppSettings
	query := `
		UPDATE app_settings
		SET reveal_enabled = $1, reveal_toggled_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING *
	`
	err := r.db.GetContext(ctx, &settings, query, enabled)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
