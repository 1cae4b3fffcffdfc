package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type profileRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProfileRepository(db database.Querier, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, first_name, last_name, phone, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		profile.AvatarURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create profile", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return fmt.Errorf("create profile %s: %w", profile.ID.String(), err)
	}

	return nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `
		SELECT id, first_name, last_name, phone, avatar_url, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile entity.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find profile %s: %w", userID.String(), err)
	}

	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $2, last_name = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return fmt.Errorf("update profile %s: %w", profile.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", profile.ID.String())
	}

	return nil
}
