package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/gotanda-lunch/internal/handler" // handlers that translate service results into JSON
)

// RegisterRoutes registers routes that sit outside the versioned API.
// Currently it exposes only a health check backed by a store ping.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterPublic registers the restaurant browse endpoints.  They need no
// authentication and are never rate limited.
func RegisterPublic(e *echo.Echo, r *handler.RestaurantHandler) {
	// List (and search by ?keyword=) at most five restaurants
	e.GET("/v1/restaurants", r.List)
	// Full detail of one restaurant, 404 when the id is unknown
	e.GET("/v1/restaurants/:id", r.Get)
}

// RegisterReviews registers the review form endpoint.  limit is applied to
// this route only so browsing stays unthrottled.
func RegisterReviews(e *echo.Echo, rv *handler.ReviewHandler, limit echo.MiddlewareFunc) {
	e.POST("/v1/restaurants/:id/reviews", rv.Submit, limit)
}
