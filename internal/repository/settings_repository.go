package repository

import (
	"context"

	"github.com/fredluz/Cupido/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	SetRevealEnabled(ctx context.Context, enabled bool) (*domain.AppSettings, error)
}
