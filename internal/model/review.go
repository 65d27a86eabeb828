package model

import "time"

// Review is a visitor's rating of a restaurant.  Reviews are immutable once
// created; this service only reads them.
//
// Fields:
//  ID           – primary key (UUID string).
//  Title        – optional headline.
//  Content      – review body, always non-empty.
//  Rating       – integer score in [1,5].
//  VisitDate    – day of the visit, when the reviewer gave one.
//  HelpfulCount – number of "helpful" votes.
//  CreatedAt    – creation timestamp.
type Review struct {
	ID           string     // reviews.id
	Title        *string    // reviews.title (nullable)
	Content      string     // reviews.content
	Rating       int        // reviews.rating
	VisitDate    *time.Time // reviews.visit_date (nullable)
	HelpfulCount int        // reviews.helpful_count
	CreatedAt    time.Time  // reviews.created_at
}
