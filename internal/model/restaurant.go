package model

import "time"

// Restaurant is a lunch spot listed on the site together with every
// relation the detail page needs.  Relations that were not loaded (the
// list query skips features and menus) are left empty, never nil-checked
// by callers.
//
// Fields:
//  ID            – primary key (UUID string).
//  Name          – display name; the keyword search matches against it.
//  Description   – free text shown on the detail page.
//  Address       – street address.
//  Phone         – contact number as entered by the owner.
//  BusinessHours – lunch/dinner opening hours.
//  PriceRange    – free-text price label (e.g. "¥1,000～¥1,999").
//  CreatedAt     – insertion timestamp; drives the default list order.
type Restaurant struct {
	ID            string        // restaurants.id
	Name          string        // restaurants.name
	Description   string        // restaurants.description
	Address       string        // restaurants.address
	Phone         string        // restaurants.phone
	BusinessHours BusinessHours // restaurants.business_hours (JSON)
	PriceRange    string        // restaurants.price_range
	CreatedAt     time.Time     // restaurants.created_at

	Categories []Category // via restaurant_categories
	Images     []Image    // restaurant_images
	Features   []Feature  // via restaurant_feature_relations
	Menus      []MenuItem // menus
	Reviews    []Review   // reviews
}

// BusinessHours holds the optional lunch and dinner hours strings.
type BusinessHours struct {
	Lunch  *string `json:"lunch,omitempty"`
	Dinner *string `json:"dinner,omitempty"`
}

// Category is a cuisine label such as "ラーメン" or "和食".
type Category struct {
	Name string // categories.name
}

// Feature is a facility or service label such as "個室あり".
type Feature struct {
	Name string // restaurant_features.name
}

// Image is a photo of a restaurant.  At most one image per restaurant is
// expected to carry IsMain, but readers must tolerate zero or several.
type Image struct {
	URL    string // restaurant_images.url
	IsMain bool   // restaurant_images.is_main
}
