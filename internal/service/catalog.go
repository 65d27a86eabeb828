// Package service sits between the HTTP handlers and the store.  It owns the
// list page size, turns entities into view models and decides which store
// outcomes count as "not found".
package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
	"github.com/iliyamo/gotanda-lunch/internal/model"
	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/view"
)

// ListPageSize is the fixed number of restaurants returned by List.
const ListPageSize = 5

// RestaurantStore is the read capability the catalog needs.
// *repository.RestaurantRepo satisfies it.
type RestaurantStore interface {
	List(ctx context.Context, keyword string, limit int) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// CatalogService serves the list and detail views.  It holds no mutable
// state and is safe for concurrent use.
type CatalogService struct {
	store RestaurantStore
}

// NewCatalogService constructs a CatalogService on top of store.
func NewCatalogService(store RestaurantStore) *CatalogService {
	if store == nil {
		panic("nil store passed to NewCatalogService")
	}
	return &CatalogService{store: store}
}

// List returns up to ListPageSize restaurant cards whose name contains
// keyword.  The result is never nil.
func (s *CatalogService) List(ctx context.Context, keyword string) ([]view.RestaurantSummary, error) {
	rows, err := s.store.List(ctx, keyword, ListPageSize)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if len(rows) > ListPageSize {
		rows = rows[:ListPageSize]
	}
	out := make([]view.RestaurantSummary, 0, len(rows))
	for _, r := range rows {
		warnOutOfRange(ctx, r)
		out = append(out, view.ToSummary(r))
	}
	return out, nil
}

// Get returns the detail view of one restaurant, or an error matching
// repository.ErrRestaurantNotFound.
func (s *CatalogService) Get(ctx context.Context, id string) (*view.RestaurantDetail, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	if r == nil || r.ID == "" {
		// A successful query that yields nothing is still "no such restaurant".
		return nil, fmt.Errorf("get restaurant %s: %w", id, repository.ErrRestaurantNotFound)
	}
	warnOutOfRange(ctx, *r)
	d := view.ToDetail(*r)
	return &d, nil
}

// Exists reports whether a restaurant with id is present.
func (s *CatalogService) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check restaurant %s: %w", id, err)
	}
	return ok, nil
}

func warnOutOfRange(ctx context.Context, r model.Restaurant) {
	if n := view.OutOfRange(r.Reviews); n > 0 {
		logging.FromContext(ctx).Warn().
			Str("restaurant_id", r.ID).
			Int("reviews", n).
			Msg("ratings outside 1..5 were clamped")
	}
}
