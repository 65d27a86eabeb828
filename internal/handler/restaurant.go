// Package handler exposes HTTP handlers for the public API.  Handlers
// translate service results into JSON and map errors to status codes; raw
// store errors are logged, never returned to the client.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/view"
)

// Catalog is the read side the restaurant handlers need.
// *service.CatalogService satisfies it.
type Catalog interface {
	List(ctx context.Context, keyword string) ([]view.RestaurantSummary, error)
	Get(ctx context.Context, id string) (*view.RestaurantDetail, error)
}

// RestaurantHandler serves the list and detail endpoints.
type RestaurantHandler struct {
	Catalog Catalog
}

// NewRestaurantHandler constructs a RestaurantHandler.
func NewRestaurantHandler(catalog Catalog) *RestaurantHandler {
	return &RestaurantHandler{Catalog: catalog}
}

// List handles GET /v1/restaurants?keyword=.  The response contains an
// "items" array of at most five restaurant cards; an empty result is an
// empty array, not an error.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	keyword := c.QueryParam("keyword")
	items, err := h.Catalog.List(ctx, keyword)
	if err != nil {
		return storeFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "keyword": keyword})
}

// Get handles GET /v1/restaurants/:id.
func (h *RestaurantHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.Param("id"))
	d, err := h.Catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return storeFailure(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// storeFailure logs err with whatever diagnostics the store attached and
// answers with a generic 500.
func storeFailure(c echo.Context, err error) error {
	ev := logging.FromContext(c.Request().Context()).Error().Err(err).Str("path", c.Path())
	var qe *repository.QueryError
	if errors.As(err, &qe) {
		ev = ev.Str("op", qe.Op).Str("code", qe.Code).Str("hint", qe.Hint)
	}
	ev.Msg("store query failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
