// Package view turns restaurant entities into the flat structures the UI
// renders.  Everything here is pure: no I/O, no errors.  Missing relations
// degrade to empty slices, a nil rating and a zero review count.
package view

import (
	"time"

	"github.com/iliyamo/gotanda-lunch/internal/model"
)

// RestaurantSummary is one card on the list page.
type RestaurantSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PriceRange  string   `json:"price_range"`
	Categories  []string `json:"categories"`
	MainImage   *string  `json:"main_image"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

// RestaurantDetail is the detail page: the full restaurant plus derived fields.
type RestaurantDetail struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Address            string              `json:"address"`
	Phone              string              `json:"phone"`
	BusinessHours      model.BusinessHours `json:"business_hours"`
	PriceRange         string              `json:"price_range"`
	Categories         []string            `json:"categories"`
	Images             []string            `json:"images"`
	MainImage          *string             `json:"main_image"`
	Features           []string            `json:"features"`
	Menus              []Menu              `json:"menus"`
	PopularMenus       []Menu              `json:"popular_menus"`
	Rating             *float64            `json:"rating"`
	ReviewCount        int                 `json:"review_count"`
	HasReviews         bool                `json:"has_reviews"`
	RatingDistribution RatingDistribution  `json:"rating_distribution"`
	Reviews            []Review            `json:"reviews"`
}

// Menu is a dish on the menu.
type Menu struct {
	Name        string  `json:"name"`
	Price       int     `json:"price"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsPopular   bool    `json:"is_popular"`
}

// Review is a single entry of the review list.
type Review struct {
	ID           string     `json:"id"`
	Title        *string    `json:"title"`
	Content      string     `json:"content"`
	Rating       int        `json:"rating"`
	VisitDate    *time.Time `json:"visit_date"`
	HelpfulCount int        `json:"helpful_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToSummary builds the list card for r.
func ToSummary(r model.Restaurant) RestaurantSummary {
	rating, count := AverageRating(r.Reviews)
	return RestaurantSummary{
		ID:          r.ID,
		Name:        r.Name,
		PriceRange:  r.PriceRange,
		Categories:  CategoryNames(r.Categories),
		MainImage:   MainImage(r.Images),
		Rating:      rating,
		ReviewCount: count,
	}
}

// ToDetail builds the detail page for r.
func ToDetail(r model.Restaurant) RestaurantDetail {
	rating, count := AverageRating(r.Reviews)
	images := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, img.URL)
	}
	reviews := make([]Review, 0, len(r.Reviews))
	for _, rv := range r.Reviews {
		reviews = append(reviews, Review{
			ID:           rv.ID,
			Title:        rv.Title,
			Content:      rv.Content,
			Rating:       rv.Rating,
			VisitDate:    rv.VisitDate,
			HelpfulCount: rv.HelpfulCount,
			CreatedAt:    rv.CreatedAt,
		})
	}
	return RestaurantDetail{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		Address:            r.Address,
		Phone:              r.Phone,
		BusinessHours:      r.BusinessHours,
		PriceRange:         r.PriceRange,
		Categories:         CategoryNames(r.Categories),
		Images:             images,
		MainImage:          MainImage(r.Images),
		Features:           FeatureNames(r.Features),
		Menus:              Menus(r.Menus),
		PopularMenus:       PopularMenus(r.Menus),
		Rating:             rating,
		ReviewCount:        count,
		HasReviews:         count > 0,
		RatingDistribution: Distribution(r.Reviews),
		Reviews:            reviews,
	}
}

// CategoryNames flattens category rows in join order.  Duplicates are kept.
func CategoryNames(cs []model.Category) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

// FeatureNames flattens feature rows in join order.  Duplicates are kept.
func FeatureNames(fs []model.Feature) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Name)
	}
	return out
}

// MainImage returns the URL of the first image flagged main, or nil.
func MainImage(images []model.Image) *string {
	for _, img := range images {
		if img.IsMain {
			u := img.URL
			return &u
		}
	}
	return nil
}

// Menus maps every dish, in their original order.
func Menus(menus []model.MenuItem) []Menu {
	out := make([]Menu, 0, len(menus))
	for _, m := range menus {
		out = append(out, toMenu(m))
	}
	return out
}

// PopularMenus keeps the dishes flagged popular, in their original order.
func PopularMenus(menus []model.MenuItem) []Menu {
	out := make([]Menu, 0, len(menus))
	for _, m := range menus {
		if m.IsPopular {
			out = append(out, toMenu(m))
		}
	}
	return out
}

func toMenu(m model.MenuItem) Menu {
	return Menu{
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		IsPopular:   m.IsPopular,
	}
}
