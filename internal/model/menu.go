package model

// MenuItem is a dish offered by a restaurant.
//
// Fields:
//  Name        – dish name.
//  Price       – price in the smallest currency unit (yen), never negative.
//  Description – short description.
//  ImageURL    – optional photo.
//  IsPopular   – marks the dish for the "popular menu" section.
type MenuItem struct {
	Name        string  // menus.name
	Price       int     // menus.price
	Description string  // menus.description
	ImageURL    *string // menus.image_url (nullable)
	IsPopular   bool    // menus.is_popular
}
