package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gotanda-lunch/internal/logging"
	"github.com/iliyamo/gotanda-lunch/internal/repository"
	"github.com/iliyamo/gotanda-lunch/internal/review"
)

// ReviewSubmitter is satisfied by *service.ReviewService.
type ReviewSubmitter interface {
	Submit(ctx context.Context, sub review.Submission) (string, error)
}

// ReviewHandler accepts review form posts.
type ReviewHandler struct {
	Reviews ReviewSubmitter
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews ReviewSubmitter) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type submitReviewRequest struct {
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	VisitDate string `json:"visit_date"`
}

// Submit handles POST /v1/restaurants/:id/reviews.  A valid review is
// accepted for asynchronous storage and answered with 202 and the
// submission id.  Validation failures return 400 naming the field.
func (h *ReviewHandler) Submit(c echo.Context) error {
	var body submitReviewRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	sub := review.Submission{
		RestaurantID: c.Param("id"),
		Rating:       body.Rating,
		Title:        body.Title,
		Content:      body.Content,
		VisitDate:    body.VisitDate,
	}
	id, err := h.Reviews.Submit(c.Request().Context(), sub)
	if err != nil {
		var ve *review.ValidationError
		var pe *review.PersistenceError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   "validation_failed",
				"field":   ve.Field,
				"message": ve.Message,
			})
		case errors.Is(err, repository.ErrRestaurantNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case errors.As(err, &pe):
			logging.FromContext(c.Request().Context()).Error().Err(err).Msg("review hand-off failed")
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "review could not be submitted"})
		default:
			return storeFailure(c, err)
		}
	}
	return c.JSON(http.StatusAccepted, echo.Map{"submission_id": id})
}
