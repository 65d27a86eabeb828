package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/review"
)

// ReviewService validates review submissions and hands them to a sink.
type ReviewService struct {
	catalog *CatalogService
	sink    review.Sink
	now     func() time.Time
}

// NewReviewService constructs a ReviewService.  now may be nil, in which
// case time.Now is used.
func NewReviewService(catalog *CatalogService, sink review.Sink, now func() time.Time) *ReviewService {
	if catalog == nil || sink == nil {
		panic("nil dependency passed to NewReviewService")
	}
	if now == nil {
		now = time.Now
	}
	return &ReviewService{catalog: catalog, sink: sink, now: now}
}

// Submit validates sub, checks the restaurant exists and forwards the
// review.  It returns the submission id assigned by the sink.
//
// Validation runs first so malformed input never costs a store round-trip.
func (s *ReviewService) Submit(ctx context.Context, sub review.Submission) (string, error) {
	accepted, err := review.Validate(sub, s.now())
	if err != nil {
		return "", err
	}
	ok, err := s.catalog.Exists(ctx, sub.RestaurantID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("submit review: %w", repository.ErrRestaurantNotFound)
	}
	id, err := s.sink.Submit(ctx, accepted)
	if err != nil {
		return "", &review.PersistenceError{Err: err}
	}
	return id, nil
}
