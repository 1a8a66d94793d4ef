package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hbnb_web/internal/adapters/hbnb"
	"hbnb_web/internal/adapters/observability"
	redisad "hbnb_web/internal/adapters/redis"
	"hbnb_web/internal/app"
	"hbnb_web/internal/shared"
	"hbnb_web/internal/view"
)

// warmer pre-renders every place page into the cache so the first visitor
// after a deploy never waits on the upstream API.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.APIBase).
		Int("workers", cfg.WarmWorkers).
		Msg("cache warmer starting")

	client, err := hbnb.New(cfg.APIBase, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places API client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pages := app.NewPageService(client, cache, cfg.CacheTTL)

	// warming the listing page also discovers every place id
	page, err := pages.Listings(ctx, "", view.AllPrices)
	if err != nil {
		log.Fatal().Err(err).Msg("listing prefetch failed")
	}
	log.Info().Int("places", len(page.Nodes)).Msg("listing page warmed")

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var wg sync.WaitGroup

	for _, node := range page.Nodes {
		id := node.PlaceID

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(placeID string) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := pages.Detail(ctx, "", placeID); err != nil {
				log.Warn().Str("place_id", placeID).Err(err).Msg("detail warm failed")
				return
			}
			log.Info().Str("place_id", placeID).Msg("detail warmed")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("cache warm completed")
}
