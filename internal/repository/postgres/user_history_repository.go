package postgres

import (
	"context"
	"fmt"

	"marketSearch/domain"

	"gorm.io/gorm"
)

// historyScanLimit bounds how much history feeds one interest profile.
const historyScanLimit = 50

type UserHistoryRepository struct {
	DB *gorm.DB
}

func NewUserHistoryRepository(db *gorm.DB) *UserHistoryRepository {
	return &UserHistoryRepository{
		DB: db,
	}
}

// FindUserHistory loads the user's browsing and purchase events, most recent
// first, bounded per event type.
func (r *UserHistoryRepository) FindUserHistory(ctx context.Context, userID uint) (domain.UserHistory, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserHistory{}, fmt.Errorf("context error: %w", err)
	}

	var history domain.UserHistory

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, domain.EventView).
		Order("created_at DESC").
		Limit(historyScanLimit).
		Find(&history.Browsing).Error
	if err != nil {
		return domain.UserHistory{}, fmt.Errorf("failed to find browsing history: %w", err)
	}

	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, domain.EventPurchase).
		Order("created_at DESC").
		Limit(historyScanLimit).
		Find(&history.Purchases).Error
	if err != nil {
		return domain.UserHistory{}, fmt.Errorf("failed to find purchase history: %w", err)
	}

	return history, nil
}

// SaveEvent appends one interaction row. Written by the HTTP surface when
// views and purchases are reported.
func (r *UserHistoryRepository) SaveEvent(ctx context.Context, event domain.InteractionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save interaction event: %w", err)
	}

	return nil
}
