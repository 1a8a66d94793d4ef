package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hbnb_web/internal/domain"
	"hbnb_web/internal/view"
)

const (
	listingsKey    = "places:all"
	detailKeyPfx   = "place:"
	ratingFanLimit = 8
)

type PageService struct {
	api      domain.PlacesAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPageService(api domain.PlacesAPI, c domain.Cache, ttl time.Duration) *PageService {
	return &PageService{api: api, cache: c, cacheTTL: ttl}
}

// Listings builds the listing page: places from the API, per-place average
// ratings fanned out concurrently, then the price filter. The unfiltered page
// is what gets cached so one visitor's threshold never leaks into another's.
func (s *PageService) Listings(ctx context.Context, token string, t view.Threshold) (domain.ListingPage, error) {
	var page domain.ListingPage
	if ok, _ := s.cache.Get(ctx, listingsKey, &page); ok {
		page.Nodes = view.ApplyFilter(page.Nodes, t)
		return page, nil
	}

	places, err := s.api.ListPlaces(ctx, token)
	if err != nil {
		return domain.ListingPage{}, err
	}
	nodes := view.BuildListings(places)

	// One rating request per place, no ordering between them; a failed rating
	// degrades that node to 0 stars and never fails the page.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ratingFanLimit)
	for i := range nodes {
		i := i
		g.Go(func() error {
			avg, err := s.api.GetAverageRating(gctx, nodes[i].PlaceID)
			if err != nil {
				log.Warn().Str("place_id", nodes[i].PlaceID).Err(err).Msg("average rating fetch failed")
				avg = 0
			}
			nodes[i].AverageRating = avg
			nodes[i].Stars = view.StarString(avg)
			return nil
		})
	}
	_ = g.Wait()

	page = domain.ListingPage{Nodes: nodes}
	_ = s.cache.Set(ctx, listingsKey, page, int(s.cacheTTL.Seconds()))

	page.Nodes = view.ApplyFilter(page.Nodes, t)
	return page, nil
}

// Detail builds the place detail page. The place itself must load; reviews and
// the average rating are best-effort and degrade to their placeholders.
func (s *PageService) Detail(ctx context.Context, token, id string) (domain.DetailView, error) {
	key := detailKeyPfx + id
	var dv domain.DetailView
	if ok, _ := s.cache.Get(ctx, key, &dv); ok {
		return dv, nil
	}

	place, err := s.api.GetPlace(ctx, id, token)
	if err != nil {
		return domain.DetailView{}, err
	}

	reviews, err := s.api.ListPlaceReviews(ctx, id)
	if err != nil {
		log.Warn().Str("place_id", id).Err(err).Msg("review listing failed, rendering without reviews")
		reviews = nil
	}

	avg := -1.0 // compute locally unless the API answers
	if a, aerr := s.api.GetAverageRating(ctx, id); aerr == nil {
		avg = a
	}

	dv = view.BuildDetail(place, reviews, avg)
	_ = s.cache.Set(ctx, key, dv, int(s.cacheTTL.Seconds()))
	return dv, nil
}

// InvalidatePlace drops the cached detail page and the listing page after a
// write (a fresh review changes both).
func (s *PageService) InvalidatePlace(ctx context.Context, id string) {
	_ = s.cache.Del(ctx, detailKeyPfx+id)
	_ = s.cache.Del(ctx, listingsKey)
}
