package view

import (
	"encoding/json"
	"strconv"

	"github.com/iliyamo/gotanda-lunch/internal/model"
)

// MinRating and MaxRating bound a review score.
const (
	MinRating = 1
	MaxRating = 5
)

// RatingDistribution counts reviews per star value.  Index 0 holds 1-star
// reviews, index 4 holds 5-star reviews.
type RatingDistribution [MaxRating]int

// Count returns the number of reviews with the given star value, or 0 for
// values outside [1,5].
func (d RatingDistribution) Count(stars int) int {
	if stars < MinRating || stars > MaxRating {
		return 0
	}
	return d[stars-1]
}

// Total is the sum of all buckets.
func (d RatingDistribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// MarshalJSON writes the distribution as {"1":n,...,"5":n} with all five
// keys present.
func (d RatingDistribution) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, MaxRating)
	for stars := MinRating; stars <= MaxRating; stars++ {
		m[strconv.Itoa(stars)] = d[stars-1]
	}
	return json.Marshal(m)
}

// clampRating pins a stored rating into [1,5].  The store enforces the
// range with a CHECK constraint; the clamp keeps the bucket total equal to
// the review count and the mean inside the scale if a bad row slips through.
func clampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// AverageRating returns the mean rating and the review count.  The mean is
// nil when there are no reviews.
func AverageRating(reviews []model.Review) (*float64, int) {
	if len(reviews) == 0 {
		return nil, 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += clampRating(rv.Rating)
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg, len(reviews)
}

// Distribution buckets reviews by rating.  Every review lands in exactly one
// bucket, so Total always equals len(reviews).
func Distribution(reviews []model.Review) RatingDistribution {
	var d RatingDistribution
	for _, rv := range reviews {
		d[clampRating(rv.Rating)-1]++
	}
	return d
}

// OutOfRange counts reviews whose rating falls outside [1,5].
func OutOfRange(reviews []model.Review) int {
	n := 0
	for _, rv := range reviews {
		if rv.Rating < MinRating || rv.Rating > MaxRating {
			n++
		}
	}
	return n
}
