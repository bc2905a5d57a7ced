package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, user_name, phone, gender, looking_for, course_code, study_year,
			romantic, adventurous, intellectual, creative, chill, social, ambitious
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			phone = EXCLUDED.phone,
			gender = EXCLUDED.gender,
			looking_for = EXCLUDED.looking_for,
			course_code = EXCLUDED.course_code,
			study_year = EXCLUDED.study_year,
			romantic = EXCLUDED.romantic,
			adventurous = EXCLUDED.adventurous,
			intellectual = EXCLUDED.intellectual,
			creative = EXCLUDED.creative,
			chill = EXCLUDED.chill,
			social = EXCLUDED.social,
			ambitious = EXCLUDED.ambitious,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.UserName, profile.Phone, profile.Gender,
		profile.LookingFor, profile.CourseCode, profile.StudyYear,
		profile.Romantic, profile.Adventurous, profile.Intellectual,
		profile.Creative, profile.Chill, profile.Social, profile.Ambitious,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdatePhone(ctx context.Context, userID, phone string) error {
	query := `
		UPDATE profiles
		SET phone = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, phone, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `SELECT * FROM profiles ORDER BY created_at, user_id`
	err := r.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}
