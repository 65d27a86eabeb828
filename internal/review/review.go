// Package review validates review submissions before they are handed to
// the service that stores them.  This package never persists anything
// itself; a Sink receives every submission that passes validation.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits applied to submitted text.
const (
	MaxTitleLen   = 100
	MaxContentLen = 2000
	DateLayout    = "2006-01-02"
)

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("invalid review")

// Submission is what the review form posts.
type Submission struct {
	RestaurantID string
	Rating       int
	Title        string // optional
	Content      string
	VisitDate    string // optional, YYYY-MM-DD
}

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// PersistenceError reports that the sink could not accept a valid submission.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "review hand-off failed: " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Accepted is a submission that passed validation, normalized.
type Accepted struct {
	RestaurantID string
	Rating       int
	Title        *string
	Content      string
	VisitDate    *time.Time
}

// Sink receives accepted submissions.  Implementations forward them to the
// write path and return an identifier for the submission.
type Sink interface {
	Submit(ctx context.Context, a Accepted) (string, error)
}

// Validate checks s against the form rules and returns the normalized
// submission.  now decides what "today" is for the visit date check.
func Validate(s Submission, now time.Time) (Accepted, error) {
	if s.Rating < 1 || s.Rating > 5 {
		return Accepted{}, &ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	content := strings.TrimSpace(s.Content)
	if content == "" {
		return Accepted{}, &ValidationError{Field: "content", Message: "is required"}
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return Accepted{}, &ValidationError{Field: "content", Message: fmt.Sprintf("must be at most %d characters", MaxContentLen)}
	}
	a := Accepted{RestaurantID: s.RestaurantID, Rating: s.Rating, Content: content}

	if title := strings.TrimSpace(s.Title); title != "" {
		if utf8.RuneCountInString(title) > MaxTitleLen {
			return Accepted{}, &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxTitleLen)}
		}
		a.Title = &title
	}

	if raw := strings.TrimSpace(s.VisitDate); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Accepted{}, &ValidationError{Field: "visit_date", Message: "must be YYYY-MM-DD"}
		}
		today := now.UTC().Format(DateLayout)
		if raw > today {
			return Accepted{}, &ValidationError{Field: "visit_date", Message: "must not be in the future"}
		}
		a.VisitDate = &d
	}
	return a, nil
}
