package view_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gotanda-lunch/internal/model"
	"github.com/iliyamo/gotanda-lunch/internal/view"
)

func strp(s string) *string { return &s }

func reviewsWith(ratings ...int) []model.Review {
	out := make([]model.Review, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, model.Review{Rating: r, Content: "ok"})
	}
	return out
}

func TestMainImage(t *testing.T) {
	t.Run("first flagged image wins", func(t *testing.T) {
		got := view.MainImage([]model.Image{
			{URL: "a", IsMain: false},
			{URL: "b", IsMain: true},
			{URL: "c", IsMain: true},
		})
		require.NotNil(t, got)
		assert.Equal(t, "b", *got)
	})

	t.Run("no flagged image", func(t *testing.T) {
		assert.Nil(t, view.MainImage([]model.Image{{URL: "a"}, {URL: "b"}}))
	})

	t.Run("no images", func(t *testing.T) {
		assert.Nil(t, view.MainImage(nil))
		assert.Nil(t, view.MainImage([]model.Image{}))
	})
}

func TestPopularMenus(t *testing.T) {
	got := view.PopularMenus([]model.MenuItem{
		{Name: "X", IsPopular: false},
		{Name: "Y", IsPopular: true, Price: 950},
		{Name: "Z", IsPopular: true, ImageURL: strp("z.jpg")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Y", got[0].Name)
	assert.Equal(t, 950, got[0].Price)
	assert.Equal(t, "Z", got[1].Name)
	require.NotNil(t, got[1].ImageURL)
	assert.Equal(t, "z.jpg", *got[1].ImageURL)

	assert.Empty(t, view.PopularMenus(nil))
	assert.NotNil(t, view.PopularMenus(nil))
}

func TestCategoryAndFeatureNamesKeepOrderAndDuplicates(t *testing.T) {
	cats := view.CategoryNames([]model.Category{{Name: "ラーメン"}, {Name: "中華"}, {Name: "ラーメン"}})
	assert.Equal(t, []string{"ラーメン", "中華", "ラーメン"}, cats)

	feats := view.FeatureNames([]model.Feature{{Name: "個室あり"}, {Name: "禁煙"}})
	assert.Equal(t, []string{"個室あり", "禁煙"}, feats)

	assert.Equal(t, []string{}, view.CategoryNames(nil))
	assert.Equal(t, []string{}, view.FeatureNames(nil))
}

func TestToSummary(t *testing.T) {
	r := model.Restaurant{
		ID:         "11111111-1111-1111-1111-111111111111",
		Name:       "Tokyo Ramen House",
		PriceRange: "¥1,000～¥1,999",
		Categories: []model.Category{{Name: "ラーメン"}},
		Images:     []model.Image{{URL: "front.jpg", IsMain: true}},
		Reviews:    reviewsWith(4, 5, 3),
	}

	s := view.ToSummary(r)
	assert.Equal(t, r.ID, s.ID)
	assert.Equal(t, "Tokyo Ramen House", s.Name)
	assert.Equal(t, "¥1,000～¥1,999", s.PriceRange)
	assert.Equal(t, []string{"ラーメン"}, s.Categories)
	require.NotNil(t, s.MainImage)
	assert.Equal(t, "front.jpg", *s.MainImage)
	require.NotNil(t, s.Rating)
	assert.InDelta(t, 4.0, *s.Rating, 1e-9)
	assert.Equal(t, 3, s.ReviewCount)
}

func TestToSummaryWithoutRelations(t *testing.T) {
	s := view.ToSummary(model.Restaurant{ID: "x", Name: "Empty"})
	assert.Equal(t, []string{}, s.Categories)
	assert.Nil(t, s.MainImage)
	assert.Nil(t, s.Rating)
	assert.Equal(t, 0, s.ReviewCount)

	body, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"rating":null`)
	assert.Contains(t, string(body), `"categories":[]`)
}

func TestToDetail(t *testing.T) {
	r := model.Restaurant{
		ID:          "22222222-2222-2222-2222-222222222222",
		Name:        "五反田食堂",
		Description: "定食屋",
		Address:     "東京都品川区西五反田1-1-1",
		Phone:       "03-0000-0000",
		BusinessHours: model.BusinessHours{
			Lunch: strp("11:00-14:00"),
		},
		PriceRange: "～¥999",
		Categories: []model.Category{{Name: "和食"}},
		Images:     []model.Image{{URL: "a.jpg"}, {URL: "b.jpg", IsMain: true}},
		Features:   []model.Feature{{Name: "カード可"}},
		Menus: []model.MenuItem{
			{Name: "焼き魚定食", Price: 900, IsPopular: true},
			{Name: "味噌汁", Price: 100},
		},
		Reviews: []model.Review{
			{ID: "r1", Rating: 5, Content: "最高", Title: strp("また来ます"), HelpfulCount: 2},
			{ID: "r2", Rating: 3, Content: "普通"},
		},
	}

	d := view.ToDetail(r)
	assert.Equal(t, r.ID, d.ID)
	assert.Equal(t, "定食屋", d.Description)
	assert.Equal(t, "03-0000-0000", d.Phone)
	require.NotNil(t, d.BusinessHours.Lunch)
	assert.Nil(t, d.BusinessHours.Dinner)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, d.Images)
	require.NotNil(t, d.MainImage)
	assert.Equal(t, "b.jpg", *d.MainImage)
	assert.Equal(t, []string{"カード可"}, d.Features)
	require.Len(t, d.Menus, 2)
	assert.Equal(t, "焼き魚定食", d.Menus[0].Name)
	assert.Equal(t, "味噌汁", d.Menus[1].Name)
	assert.False(t, d.Menus[1].IsPopular)
	require.Len(t, d.PopularMenus, 1)
	assert.Equal(t, "焼き魚定食", d.PopularMenus[0].Name)
	require.NotNil(t, d.Rating)
	assert.InDelta(t, 4.0, *d.Rating, 1e-9)
	assert.Equal(t, 2, d.ReviewCount)
	assert.True(t, d.HasReviews)
	assert.Equal(t, 1, d.RatingDistribution.Count(5))
	assert.Equal(t, 1, d.RatingDistribution.Count(3))
	assert.Equal(t, 0, d.RatingDistribution.Count(1))
	require.Len(t, d.Reviews, 2)
	assert.Equal(t, "r1", d.Reviews[0].ID)
	assert.Equal(t, 2, d.Reviews[0].HelpfulCount)
}

func TestToDetailNoReviews(t *testing.T) {
	d := view.ToDetail(model.Restaurant{ID: "x", Name: "New place"})
	assert.Nil(t, d.Rating)
	assert.Equal(t, 0, d.ReviewCount)
	assert.False(t, d.HasReviews)
	assert.Equal(t, 0, d.RatingDistribution.Total())
	assert.Equal(t, []view.Review{}, d.Reviews)
	assert.Equal(t, []view.Menu{}, d.Menus)

	body, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"rating_distribution":{"1":0,"2":0,"3":0,"4":0,"5":0}`)
	assert.Contains(t, string(body), `"rating":null`)
}

func TestSummaryAndDetailAgreeOnRating(t *testing.T) {
	sets := [][]int{
		{},
		{1},
		{5, 5, 5},
		{1, 2, 3, 4, 5},
		{2, 4, 4, 3, 1, 5, 5},
	}
	for _, ratings := range sets {
		r := model.Restaurant{ID: "x", Reviews: reviewsWith(ratings...)}
		s := view.ToSummary(r)
		d := view.ToDetail(r)
		assert.Equal(t, s.ReviewCount, d.ReviewCount, "ratings %v", ratings)
		if s.Rating == nil {
			assert.Nil(t, d.Rating, "ratings %v", ratings)
			continue
		}
		require.NotNil(t, d.Rating, "ratings %v", ratings)
		assert.Equal(t, *s.Rating, *d.Rating, "ratings %v", ratings)
	}
}

func TestToDetailJSONListsEveryMenu(t *testing.T) {
	d := view.ToDetail(model.Restaurant{
		ID: "x",
		Menus: []model.MenuItem{
			{Name: "A", IsPopular: false},
			{Name: "B", IsPopular: true},
		},
	})

	body, err := json.Marshal(d)
	require.NoError(t, err)

	var got struct {
		Menus        []view.Menu `json:"menus"`
		PopularMenus []view.Menu `json:"popular_menus"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Menus, 2)
	assert.Equal(t, "A", got.Menus[0].Name)
	assert.Equal(t, "B", got.Menus[1].Name)
	require.Len(t, got.PopularMenus, 1)
	assert.Equal(t, "B", got.PopularMenus[0].Name)
}
