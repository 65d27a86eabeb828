package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iliyamo/gotanda-lunch/internal/model"
)

// The row types below mirror one table (or join) each.  They are scanned
// directly from database/sql and converted to model entities before leaving
// the repository, so nullable columns and the JSON hours column never leak
// past this package.

type restaurantRow struct {
	ID            string
	Name          string
	Description   sql.NullString
	Address       sql.NullString
	Phone         sql.NullString
	BusinessHours []byte
	PriceRange    sql.NullString
	CreatedAt     time.Time
}

func (r restaurantRow) toModel() model.Restaurant {
	return model.Restaurant{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description.String,
		Address:       r.Address.String,
		Phone:         r.Phone.String,
		BusinessHours: decodeHours(r.BusinessHours),
		PriceRange:    r.PriceRange.String,
		CreatedAt:     r.CreatedAt,
		Categories:    []model.Category{},
		Images:        []model.Image{},
		Features:      []model.Feature{},
		Menus:         []model.MenuItem{},
		Reviews:       []model.Review{},
	}
}

// decodeHours reads the business_hours JSON column.  NULL, empty and
// undecodable values all yield empty hours.
func decodeHours(raw []byte) model.BusinessHours {
	var h model.BusinessHours
	if len(raw) == 0 {
		return h
	}
	if err := json.Unmarshal(raw, &h); err != nil {
		return model.BusinessHours{}
	}
	return h
}

// categoryJoinRow is restaurant_categories joined to categories.
type categoryJoinRow struct {
	RestaurantID string
	Name         string
}

func (r categoryJoinRow) toModel() model.Category { return model.Category{Name: r.Name} }

// featureJoinRow is restaurant_feature_relations joined to restaurant_features.
type featureJoinRow struct {
	RestaurantID string
	Name         string
}

func (r featureJoinRow) toModel() model.Feature { return model.Feature{Name: r.Name} }

type imageRow struct {
	RestaurantID string
	URL          string
	IsMain       bool
}

func (r imageRow) toModel() model.Image { return model.Image{URL: r.URL, IsMain: r.IsMain} }

type menuRow struct {
	RestaurantID string
	Name         string
	Price        int
	Description  sql.NullString
	ImageURL     sql.NullString
	IsPopular    bool
}

func (r menuRow) toModel() model.MenuItem {
	m := model.MenuItem{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description.String,
		IsPopular:   r.IsPopular,
	}
	if r.ImageURL.Valid {
		u := r.ImageURL.String
		m.ImageURL = &u
	}
	return m
}

type reviewRow struct {
	RestaurantID string
	ID           string
	Title        sql.NullString
	Content      string
	Rating       int
	VisitDate    sql.NullTime
	HelpfulCount int
	CreatedAt    time.Time
}

func (r reviewRow) toModel() model.Review {
	rv := model.Review{
		ID:           r.ID,
		Content:      r.Content,
		Rating:       r.Rating,
		HelpfulCount: r.HelpfulCount,
		CreatedAt:    r.CreatedAt,
	}
	if r.Title.Valid {
		t := r.Title.String
		rv.Title = &t
	}
	if r.VisitDate.Valid {
		d := r.VisitDate.Time
		rv.VisitDate = &d
	}
	return rv
}
