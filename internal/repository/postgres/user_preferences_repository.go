package postgres

import (
	"context"
	"errors"
	"fmt"

	"marketSearch/domain"

	"gorm.io/gorm"
)

type UserPreferencesRepository struct {
	DB *gorm.DB
}

func NewUserPreferencesRepository(db *gorm.DB) *UserPreferencesRepository {
	return &UserPreferencesRepository{
		DB: db,
	}
}

func (r *UserPreferencesRepository) FindUserPreferences(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("context error: %w", err)
	}

	var prefs domain.UserPreferences

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserPreferences{}, domain.ErrUserNotFound
		}
		return domain.UserPreferences{}, fmt.Errorf("failed to find user preferences: %w", err)
	}

	return prefs, nil
}

func (r *UserPreferencesRepository) UpsertUserPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(&prefs).Error; err != nil {
		return fmt.Errorf("failed to upsert user preferences: %w", err)
	}

	return nil
}
