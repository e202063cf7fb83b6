//go:build !integration

package activity

import (
	"context"
	"errors"
	"testing"

	"marketSearch/domain"
)

type fakeHistoryRepo struct {
	saved []domain.InteractionEvent
	err   error
}

func (f *fakeHistoryRepo) SaveEvent(ctx context.Context, event domain.InteractionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, event)
	return nil
}

type fakePrefRepo struct {
	saved []domain.UserPreferences
	err   error
}

func (f *fakePrefRepo) UpsertUserPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, prefs)
	return nil
}

type fakeProductRepo struct {
	known map[uint64]bool
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if f.known[id] {
		return domain.Product{ID: id}, nil
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func newTestService(history *fakeHistoryRepo, prefs *fakePrefRepo) *Service {
	return NewService(history, prefs, &fakeProductRepo{known: map[uint64]bool{1: true}})
}

func TestRecordEventPersists(t *testing.T) {
	history := &fakeHistoryRepo{}
	s := newTestService(history, &fakePrefRepo{})

	event := domain.InteractionEvent{UserID: 42, ProductID: 1, EventType: domain.EventView}
	if err := s.RecordEvent(context.Background(), event); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(history.saved) != 1 || history.saved[0].ProductID != 1 {
		t.Fatalf("event not saved: %+v", history.saved)
	}
}

func TestRecordEventRejectsUnknownType(t *testing.T) {
	history := &fakeHistoryRepo{}
	s := newTestService(history, &fakePrefRepo{})

	event := domain.InteractionEvent{UserID: 42, ProductID: 1, EventType: "wishlist"}
	if err := s.RecordEvent(context.Background(), event); err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
	if len(history.saved) != 0 {
		t.Error("invalid event was saved")
	}
}

func TestRecordEventRejectsUnknownProduct(t *testing.T) {
	s := newTestService(&fakeHistoryRepo{}, &fakePrefRepo{})

	event := domain.InteractionEvent{UserID: 42, ProductID: 999, EventType: domain.EventPurchase}
	err := s.RecordEvent(context.Background(), event)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSavePreferencesPersists(t *testing.T) {
	prefRepo := &fakePrefRepo{}
	s := newTestService(&fakeHistoryRepo{}, prefRepo)

	prefs := domain.UserPreferences{UserID: 42, MinPrice: 100, MaxPrice: 500}
	if err := s.SavePreferences(context.Background(), prefs); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(prefRepo.saved) != 1 || prefRepo.saved[0].UserID != 42 {
		t.Fatalf("preferences not saved: %+v", prefRepo.saved)
	}
}

func TestSavePreferencesRejectsInvertedPriceRange(t *testing.T) {
	prefRepo := &fakePrefRepo{}
	s := newTestService(&fakeHistoryRepo{}, prefRepo)

	prefs := domain.UserPreferences{UserID: 42, MinPrice: 500, MaxPrice: 100}
	if err := s.SavePreferences(context.Background(), prefs); err == nil {
		t.Fatal("expected an error for min price above max price")
	}
	if len(prefRepo.saved) != 0 {
		t.Error("invalid preferences were saved")
	}
}
