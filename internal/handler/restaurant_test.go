package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gotanda-lunch/internal/handler"
	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/router"
	"github.com/iliyamo/gotanda-lunch/internal/view"
)

type stubCatalog struct {
	items   []view.RestaurantSummary
	detail  *view.RestaurantDetail
	err     error
	keyword string
}

func (s *stubCatalog) List(_ context.Context, keyword string) ([]view.RestaurantSummary, error) {
	s.keyword = keyword
	return s.items, s.err
}

func (s *stubCatalog) Get(_ context.Context, id string) (*view.RestaurantDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil || s.detail.ID != id {
		return nil, fmt.Errorf("get restaurant %s: %w", id, repository.ErrRestaurantNotFound)
	}
	return s.detail, nil
}

func serve(t *testing.T, cat handler.Catalog, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	router.RegisterPublic(e, handler.NewRestaurantHandler(cat))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestListRestaurants(t *testing.T) {
	rating := 4.5
	cat := &stubCatalog{items: []view.RestaurantSummary{{
		ID:          "r1",
		Name:        "Tokyo Ramen House",
		Categories:  []string{"ラーメン"},
		Rating:      &rating,
		ReviewCount: 2,
	}}}

	rec := serve(t, cat, http.MethodGet, "/v1/restaurants?keyword=%20Ramen%20")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, " Ramen ", cat.keyword)
	body := rec.Body.String()
	assert.Contains(t, body, `"items":[`)
	assert.Contains(t, body, `"name":"Tokyo Ramen House"`)
	assert.Contains(t, body, `"rating":4.5`)
	assert.Contains(t, body, `"keyword":" Ramen "`)
}

func TestListRestaurantsEmpty(t *testing.T) {
	rec := serve(t, &stubCatalog{items: []view.RestaurantSummary{}}, http.MethodGet, "/v1/restaurants?keyword=zzz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestListRestaurantsStoreFailureHidesDetails(t *testing.T) {
	cat := &stubCatalog{err: &repository.QueryError{
		Op:      "restaurants.list",
		Message: "Access denied for user 'lunch'",
		Code:    "1045",
	}}

	rec := serve(t, cat, http.MethodGet, "/v1/restaurants")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"database error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "Access denied")
}

func TestGetRestaurant(t *testing.T) {
	cat := &stubCatalog{detail: &view.RestaurantDetail{ID: "r1", Name: "五反田食堂"}}

	rec := serve(t, cat, http.MethodGet, "/v1/restaurants/r1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"五反田食堂"`)
}

func TestGetRestaurantNotFound(t *testing.T) {
	rec := serve(t, &stubCatalog{}, http.MethodGet, "/v1/restaurants/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"restaurant not found"}`, rec.Body.String())
}

func TestGetRestaurantStoreFailure(t *testing.T) {
	cat := &stubCatalog{err: fmt.Errorf("get restaurant r1: %w", &repository.QueryError{Op: "restaurants.get", Err: errors.New("i/o timeout")})}

	rec := serve(t, cat, http.MethodGet, "/v1/restaurants/r1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "timeout"))
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     handler.Pinger
		status int
		body   string
	}{
		{"store up", stubPinger{}, http.StatusOK, "ok"},
		{"store down", stubPinger{err: errors.New("refused")}, http.StatusServiceUnavailable, "store unavailable"},
		{"no store", nil, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			router.RegisterRoutes(e, tt.db)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
