package view

import (
	"math"
	"strings"

	"hbnb_web/internal/domain"
)

const (
	noDescription = "No description available."
	anonymous     = "Anonymous"
)

// AverageRating is sum/count rounded to one decimal, 0 for an empty set.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

// StarString renders a rating in [0,5] as exactly five glyphs:
// floor(r) filled stars, a half star when the fraction reaches 0.5,
// empty stars for the rest.
func StarString(r float64) string {
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	full := int(math.Floor(r))
	half := 0
	if r-float64(full) >= 0.5 {
		half = 1
	}
	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if half == 1 {
		b.WriteRune('⯨')
	}
	for i := full + half; i < 5; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}

// BuildDetail projects a place and its reviews into the detail view.
// avg overrides the locally computed average when the caller fetched one from
// the API; pass a negative value to compute from the review set instead.
func BuildDetail(p domain.Place, reviews []domain.Review, avg float64) domain.DetailView {
	if avg < 0 {
		avg = AverageRating(reviews)
	}

	dv := domain.DetailView{
		PlaceID:       p.ID,
		Title:         p.Title,
		PriceLabel:    FormatPrice(p.Price),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		AverageRating: avg,
		Stars:         StarString(avg),
	}
	if dv.Title == "" {
		dv.Title = untitledPlace
	}
	if dv.Description == "" {
		dv.Description = noDescription
	}
	if p.Owner != nil {
		dv.Host = strings.TrimSpace(p.Owner.FirstName + " " + p.Owner.LastName)
	}

	if len(p.Amenities) == 0 {
		dv.NoAmenities = true
	}
	for _, a := range p.Amenities {
		dv.Amenities = append(dv.Amenities, domain.AmenityView{Name: a.Name, Icon: IconFor(a.Name)})
	}

	if len(reviews) == 0 {
		dv.NoReviews = true
	}
	for _, r := range reviews {
		author := anonymous
		if r.User != nil {
			if full := strings.TrimSpace(r.User.FirstName + " " + r.User.LastName); full != "" {
				author = full
			}
		}
		dv.Reviews = append(dv.Reviews, domain.ReviewView{
			Author: author,
			Text:   r.Text,
			Stars:  StarString(float64(r.Rating)),
		})
	}
	return dv
}
