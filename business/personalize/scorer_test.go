//go:build !integration

package personalize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"marketSearch/business/trending"
	"marketSearch/domain"
)

type fakeProductRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeHistoryRepo struct {
	history domain.UserHistory
	err     error
}

func (f *fakeHistoryRepo) FindUserHistory(ctx context.Context, userID uint) (domain.UserHistory, error) {
	if f.err != nil {
		return domain.UserHistory{}, f.err
	}
	return f.history, nil
}

type fakePrefRepo struct {
	prefs domain.UserPreferences
	err   error
}

func (f *fakePrefRepo) FindUserPreferences(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if f.err != nil {
		return domain.UserPreferences{}, f.err
	}
	return f.prefs, nil
}

func viewEvent(productID uint64) domain.InteractionEvent {
	return domain.InteractionEvent{ProductID: productID, EventType: domain.EventView}
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "iPhone 14", Category: "phone", Brand: "Apple", Price: 999, Popularity: 90, Rating: 4.8},
		{ID: 2, Name: "Galaxy S23", Category: "phone", Brand: "Samsung", Price: 899, Popularity: 80, Rating: 4.6},
		{ID: 3, Name: "Air Zoom", Category: "shoes", Brand: "Nike", Price: 120, Popularity: 70, Rating: 4.4},
		{ID: 4, Name: "Espresso Maker", Category: "home", Brand: "DeLonghi", Price: 250, Popularity: 40, Rating: 4.2},
	}
}

func newTestScorer(productRepo *fakeProductRepo, historyRepo *fakeHistoryRepo, prefRepo *fakePrefRepo, trendingRepo *fakeProductRepo) *Scorer {
	return NewScorer(productRepo, historyRepo, prefRepo, trending.NewService(trendingRepo), DefaultConfig())
}

func catalogMap(products []domain.Product) map[uint64]domain.Product {
	m := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestBuildProfileCaps(t *testing.T) {
	var products []domain.Product
	var events []domain.InteractionEvent
	for i := uint64(1); i <= 8; i++ {
		products = append(products, domain.Product{
			ID:       i,
			Category: fmt.Sprintf("category-%d", i),
			Brand:    fmt.Sprintf("brand-%d", i),
			Tags:     []string{fmt.Sprintf("tag-%d-a", i), fmt.Sprintf("tag-%d-b", i)},
		})
		events = append(events, viewEvent(i))
	}

	profile := BuildProfile(domain.UserHistory{Browsing: events}, catalogMap(products))

	if len(profile.Categories) != 5 {
		t.Errorf("categories = %d, want cap 5", len(profile.Categories))
	}
	if len(profile.Brands) != 5 {
		t.Errorf("brands = %d, want cap 5", len(profile.Brands))
	}
	if len(profile.Tags) != 10 {
		t.Errorf("tags = %d, want cap 10", len(profile.Tags))
	}
	if profile.Categories[0] != "category-1" {
		t.Errorf("first category = %q, want encounter order", profile.Categories[0])
	}
}

func TestBuildProfileDeduplicates(t *testing.T) {
	catalog := catalogMap(catalogFixture())
	history := domain.UserHistory{
		Browsing:  []domain.InteractionEvent{viewEvent(1), viewEvent(2), viewEvent(1)},
		Purchases: []domain.InteractionEvent{viewEvent(2)},
	}

	profile := BuildProfile(history, catalog)

	if len(profile.Categories) != 1 || profile.Categories[0] != "phone" {
		t.Errorf("categories = %v, want [phone]", profile.Categories)
	}
	if len(profile.Brands) != 2 {
		t.Errorf("brands = %v, want two entries", profile.Brands)
	}
	if profile.Brands[0] != "Apple" || profile.Brands[1] != "Samsung" {
		t.Errorf("brands = %v, want encounter order Apple, Samsung", profile.Brands)
	}
}

func TestBuildProfileSkipsUnknownProducts(t *testing.T) {
	catalog := catalogMap(catalogFixture())
	history := domain.UserHistory{Browsing: []domain.InteractionEvent{viewEvent(777)}}

	profile := BuildProfile(history, catalog)
	if len(profile.Categories) != 0 {
		t.Errorf("categories = %v, want empty for unknown products", profile.Categories)
	}
}

func assertSameResults(t *testing.T, got, want []domain.ScoredProduct) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("position %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRecommendAnonymousUserGetsTrending(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	s := newTestScorer(repo, &fakeHistoryRepo{}, &fakePrefRepo{err: domain.ErrUserNotFound}, repo)

	got, err := s.Recommend(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	want, err := trending.NewService(repo).Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	assertSameResults(t, got, want)
}

func TestRecommendHistoryErrorGetsTrending(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{err: errors.New("connection refused")}
	s := newTestScorer(repo, historyRepo, &fakePrefRepo{err: domain.ErrUserNotFound}, repo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got) == 0 || got[0].Source != domain.SourceTrending {
		t.Fatalf("expected trending fallback, got %+v", got)
	}
}

func TestRecommendCatalogErrorGetsTrending(t *testing.T) {
	badRepo := &fakeProductRepo{err: errors.New("timeout")}
	goodRepo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(1)},
	}}
	s := newTestScorer(badRepo, historyRepo, &fakePrefRepo{err: domain.ErrUserNotFound}, goodRepo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got) == 0 || got[0].Source != domain.SourceTrending {
		t.Fatalf("expected trending fallback, got %+v", got)
	}
}

func TestRecommendEmptyProfileGetsTrending(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(777)},
	}}
	s := newTestScorer(repo, historyRepo, &fakePrefRepo{err: domain.ErrUserNotFound}, repo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got) == 0 || got[0].Source != domain.SourceTrending {
		t.Fatalf("expected trending fallback, got %+v", got)
	}
}

func TestRecommendScoresAgainstProfile(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(1)},
	}}
	s := newTestScorer(repo, historyRepo, &fakePrefRepo{err: domain.ErrUserNotFound}, repo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// Profile: category phone, brand Apple. Candidates are products 1 and 2.
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ProductID != 1 {
		t.Errorf("top result = product %d, want 1", got[0].ProductID)
	}
	for _, r := range got {
		if r.Source != domain.SourcePersonalized {
			t.Errorf("source = %q, want %q", r.Source, domain.SourcePersonalized)
		}
	}

	// product 1: category 0.3 + brand 0.2 + popularity 0.2*0.9
	if want := 0.3 + 0.2 + 0.2*0.9; math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("product 1 score = %v, want %v", got[0].Score, want)
	}
	// product 2: category 0.3 + popularity 0.2*0.8
	if want := 0.3 + 0.2*0.8; math.Abs(got[1].Score-want) > 1e-9 {
		t.Errorf("product 2 score = %v, want %v", got[1].Score, want)
	}
}

func TestRecommendUsesPreferencePriceRange(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(1)},
	}}
	prefRepo := &fakePrefRepo{prefs: domain.UserPreferences{
		UserID:   42,
		MinPrice: 900,
		MaxPrice: 1100,
	}}
	s := newTestScorer(repo, historyRepo, prefRepo, repo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// product 1 at 999 sits inside the range and picks up the price weight
	if want := 0.3 + 0.2 + 0.3 + 0.2*0.9; math.Abs(got[0].Score-want) > 1e-9 {
		t.Errorf("product 1 score = %v, want %v", got[0].Score, want)
	}
}

func TestRecommendScoreClamped(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(1)},
	}}
	prefRepo := &fakePrefRepo{prefs: domain.UserPreferences{
		UserID:    42,
		WCategory: 5,
		WBrand:    5,
	}}
	s := newTestScorer(repo, historyRepo, prefRepo, repo)

	got, err := s.Recommend(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	for _, r := range got {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("product %d score = %v out of [0,1]", r.ProductID, r.Score)
		}
	}
}

func TestRecommendTruncatesToLimit(t *testing.T) {
	repo := &fakeProductRepo{products: catalogFixture()}
	historyRepo := &fakeHistoryRepo{history: domain.UserHistory{
		Browsing: []domain.InteractionEvent{viewEvent(1), viewEvent(3)},
	}}
	s := newTestScorer(repo, historyRepo, &fakePrefRepo{err: domain.ErrUserNotFound}, repo)

	got, err := s.Recommend(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
}
