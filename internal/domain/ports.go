package domain

import "context"

// PlacesAPI is the outbound contract against the HBnB REST API.
// ListPlaceReviews absorbs upstream 404s into an empty slice: a place with no
// reviews yet is a normal state, not a failure.
type PlacesAPI interface {
	ListPlaces(ctx context.Context, token string) ([]Place, error)
	GetPlace(ctx context.Context, id, token string) (Place, error)
	ListPlaceReviews(ctx context.Context, id string) ([]Review, error)
	GetAverageRating(ctx context.Context, id string) (float64, error)
	SubmitReview(ctx context.Context, token, placeID, text string, rating int) (Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models consumed by the HTML adapter.

// ListingNode carries the raw numeric price alongside the formatted label so
// the filter engine never re-parses display strings.
type ListingNode struct {
	PlaceID       string  `json:"place_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	PriceLabel    string  `json:"price_label"`
	ImageURL      string  `json:"image_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
	Stars         string  `json:"stars"`
	Visible       bool    `json:"visible"`
}

type ListingPage struct {
	Nodes []ListingNode `json:"nodes"`
}

type AmenityView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type ReviewView struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Stars  string `json:"stars"`
}

type DetailView struct {
	PlaceID       string        `json:"place_id"`
	Title         string        `json:"title"`
	Host          string        `json:"host,omitempty"`
	PriceLabel    string        `json:"price_label"`
	Description   string        `json:"description"`
	Amenities     []AmenityView `json:"amenities,omitempty"`
	NoAmenities   bool          `json:"no_amenities"`
	AverageRating float64       `json:"average_rating"`
	Stars         string        `json:"stars"`
	Reviews       []ReviewView  `json:"reviews,omitempty"`
	NoReviews     bool          `json:"no_reviews"`
	ImageURL      string        `json:"image_url,omitempty"`
}
