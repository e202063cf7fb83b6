package activity

import (
	"context"
	"fmt"

	"marketSearch/domain"
	"marketSearch/pkg/logger"
)

type HistoryRepository interface {
	SaveEvent(ctx context.Context, event domain.InteractionEvent) error
}

type PreferenceRepository interface {
	UpsertUserPreferences(ctx context.Context, prefs domain.UserPreferences) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// Service records the interaction stream that feeds personalization: view and
// purchase events plus explicit preference updates.
type Service struct {
	historyRepo HistoryRepository
	prefRepo    PreferenceRepository
	productRepo ProductRepository
}

func NewService(historyRepo HistoryRepository, prefRepo PreferenceRepository, productRepo ProductRepository) *Service {
	return &Service{
		historyRepo: historyRepo,
		prefRepo:    prefRepo,
		productRepo: productRepo,
	}
}

// RecordEvent validates and persists one interaction. The referenced product
// must exist; unknown event types are rejected.
func (s *Service) RecordEvent(ctx context.Context, event domain.InteractionEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if event.EventType != domain.EventView && event.EventType != domain.EventPurchase {
		return fmt.Errorf("unknown event type %q", event.EventType)
	}

	if _, err := s.productRepo.FindByID(ctx, event.ProductID); err != nil {
		logger.Warn("event_product_lookup_failed", "product_id", event.ProductID, "error", err)
		return err
	}

	if err := s.historyRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("event_save_failed", "user_id", event.UserID, "error", err)
		return err
	}

	return nil
}

// SavePreferences upserts a user's explicit recommendation preferences.
func (s *Service) SavePreferences(ctx context.Context, prefs domain.UserPreferences) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if prefs.MaxPrice > 0 && prefs.MinPrice > prefs.MaxPrice {
		return fmt.Errorf("min price %v above max price %v", prefs.MinPrice, prefs.MaxPrice)
	}

	if err := s.prefRepo.UpsertUserPreferences(ctx, prefs); err != nil {
		logger.Error("preferences_save_failed", "user_id", prefs.UserID, "error", err)
		return err
	}

	return nil
}
