// Package repository contains data access logic separated from HTTP handlers.
// This file defines the restaurant queries: a keyword search returning the
// fields the list page needs, and a full lookup by id returning every
// relation the detail page needs.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/gotanda-lunch/internal/model"
)

// RestaurantRepo encapsulates all database queries related to restaurants.
// It only reads; reviews are written by an external service.
type RestaurantRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB handle.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// likeEscaper escapes LIKE wildcards so a keyword is matched literally.
// '!' is used as the escape character because it needs no quoting under
// any sql_mode.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// List returns at most limit restaurants whose name contains keyword,
// compared case-insensitively.  Only the empty string disables the filter;
// whitespace is matched like any other character.
// Restaurants come back in insertion order with categories, images and
// review ratings attached; features and menus are not loaded.
func (r *RestaurantRepo) List(ctx context.Context, keyword string, limit int) ([]model.Restaurant, error) {
	const op = "restaurants.list"
	where := "1=1"
	args := []any{}
	if keyword != "" {
		where = "LOWER(r.name) LIKE ? ESCAPE '!'"
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(keyword))+"%")
	}
	args = append(args, limit)

	q := `SELECT r.id, r.name, r.price_range
		FROM restaurants r
		WHERE ` + where + `
		ORDER BY r.created_at ASC, r.id ASC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, queryError(op, err)
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0, limit)
	index := make(map[string]int)
	for rows.Next() {
		var row restaurantRow
		if err := rows.Scan(&row.ID, &row.Name, &row.PriceRange); err != nil {
			return nil, queryError(op, err)
		}
		index[row.ID] = len(out)
		out = append(out, row.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(op, err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, rest := range out {
		ids = append(ids, rest.ID)
	}
	if err := r.attachCategories(ctx, ids, out, index); err != nil {
		return nil, queryError(op, err)
	}
	if err := r.attachImages(ctx, ids, out, index); err != nil {
		return nil, queryError(op, err)
	}
	if err := r.attachRatings(ctx, ids, out, index); err != nil {
		return nil, queryError(op, err)
	}
	return out, nil
}

// GetByID fetches one restaurant with all of its relations.  It returns
// ErrRestaurantNotFound if no row matches.  restaurants.id is a UUID
// column, so an id that does not parse as a UUID can never match and is
// answered with ErrRestaurantNotFound without a round-trip.  Drop the
// uuid.Parse guard if the schema ever moves to non-UUID keys.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	const op = "restaurants.get"
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRestaurantNotFound
	}
	const q = `SELECT id, name, description, address, phone, business_hours, price_range, created_at
		FROM restaurants WHERE id = ?`
	var row restaurantRow
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID,
		&row.Name,
		&row.Description,
		&row.Address,
		&row.Phone,
		&row.BusinessHours,
		&row.PriceRange,
		&row.CreatedAt,
	); err != nil {
		return nil, notFoundOr(op, err, ErrRestaurantNotFound)
	}

	out := []model.Restaurant{row.toModel()}
	index := map[string]int{row.ID: 0}
	ids := []string{row.ID}
	loaders := []func(context.Context, []string, []model.Restaurant, map[string]int) error{
		r.attachCategories,
		r.attachImages,
		r.attachFeatures,
		r.attachMenus,
		r.attachReviews,
	}
	for _, load := range loaders {
		if err := load(ctx, ids, out, index); err != nil {
			return nil, queryError(op, err)
		}
	}
	return &out[0], nil
}

// Exists reports whether a restaurant with id is present.  Non-UUID ids are
// absent for the same reason as in GetByID.
func (r *RestaurantRepo) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM restaurants WHERE id = ?", id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, queryError("restaurants.exists", err)
	}
	return true, nil
}

// inClause returns "?,?,..." for n placeholders and the ids as args.
func inClause(ids []string) (string, []any) {
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	return strings.Join(placeholders, ","), args
}

func (r *RestaurantRepo) attachCategories(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT rc.restaurant_id, c.name
		FROM restaurant_categories rc
		JOIN categories c ON c.id = rc.category_id
		WHERE rc.restaurant_id IN (` + in + `)
		ORDER BY rc.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row categoryJoinRow
		if err := rows.Scan(&row.RestaurantID, &row.Name); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Categories = append(out[idx].Categories, row.toModel())
		}
	}
	return rows.Err()
}

func (r *RestaurantRepo) attachImages(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT restaurant_id, url, is_main
		FROM restaurant_images
		WHERE restaurant_id IN (` + in + `)
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row imageRow
		if err := rows.Scan(&row.RestaurantID, &row.URL, &row.IsMain); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Images = append(out[idx].Images, row.toModel())
		}
	}
	return rows.Err()
}

func (r *RestaurantRepo) attachFeatures(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT rf.restaurant_id, f.name
		FROM restaurant_feature_relations rf
		JOIN restaurant_features f ON f.id = rf.feature_id
		WHERE rf.restaurant_id IN (` + in + `)
		ORDER BY rf.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row featureJoinRow
		if err := rows.Scan(&row.RestaurantID, &row.Name); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Features = append(out[idx].Features, row.toModel())
		}
	}
	return rows.Err()
}

func (r *RestaurantRepo) attachMenus(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT restaurant_id, name, price, description, image_url, is_popular
		FROM menus
		WHERE restaurant_id IN (` + in + `)
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row menuRow
		if err := rows.Scan(&row.RestaurantID, &row.Name, &row.Price, &row.Description, &row.ImageURL, &row.IsPopular); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Menus = append(out[idx].Menus, row.toModel())
		}
	}
	return rows.Err()
}

// attachRatings loads only the rating column, which is all the list view
// needs to compute averages.
func (r *RestaurantRepo) attachRatings(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT restaurant_id, rating
		FROM reviews
		WHERE restaurant_id IN (` + in + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row reviewRow
		if err := rows.Scan(&row.RestaurantID, &row.Rating); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Reviews = append(out[idx].Reviews, model.Review{Rating: row.Rating})
		}
	}
	return rows.Err()
}

// attachReviews loads full review records, newest first.
func (r *RestaurantRepo) attachReviews(ctx context.Context, ids []string, out []model.Restaurant, index map[string]int) error {
	in, args := inClause(ids)
	q := `SELECT restaurant_id, id, title, content, rating, visit_date, helpful_count, created_at
		FROM reviews
		WHERE restaurant_id IN (` + in + `)
		ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var row reviewRow
		if err := rows.Scan(
			&row.RestaurantID,
			&row.ID,
			&row.Title,
			&row.Content,
			&row.Rating,
			&row.VisitDate,
			&row.HelpfulCount,
			&row.CreatedAt,
		); err != nil {
			return err
		}
		if idx, ok := index[row.RestaurantID]; ok {
			out[idx].Reviews = append(out[idx].Reviews, row.toModel())
		}
	}
	return rows.Err()
}
