// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewSubmittedQueue is the durable queue the review writer consumes.
const ReviewSubmittedQueue = "review.submitted"

// ReviewSubmittedEvent is published when a review passes validation.  It
// carries everything the writer needs to insert the row without asking
// this service again.
type ReviewSubmittedEvent struct {
	SubmissionID string  `json:"submission_id"`
	RestaurantID string  `json:"restaurant_id"`
	Rating       int     `json:"rating"`
	Title        *string `json:"title,omitempty"`
	Content      string  `json:"content"`
	VisitDate    *string `json:"visit_date,omitempty"` // YYYY-MM-DD
	SubmittedAt  string  `json:"submitted_at"`         // RFC 3339, UTC
}
