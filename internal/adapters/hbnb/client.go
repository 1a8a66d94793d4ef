package hbnb

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hbnb_web/internal/adapters/observability"
	"hbnb_web/internal/domain"
)

// Client talks to the HBnB REST API (fixed origin + version prefix).
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrNotFound     = errors.New("hbnb: not found")
	ErrUnauthorized = errors.New("hbnb: unauthorized")
	ErrForbidden    = errors.New("hbnb: forbidden")
)

// StatusError is a non-2xx response outside the sentinel set.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hbnb: status %d: %s", e.Status, e.Body)
}

// Rejection is a structured {error: "..."} body on review submission.
// Message must reach the user verbatim (duplicate review, self-review, ...).
type Rejection struct {
	Status  int
	Message string
}

func (e *Rejection) Error() string { return "hbnb: rejected: " + e.Message }

// ---- wire types ----

type placeDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Owner       *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"owner"`
	Amenities []struct {
		Name string `json:"name"`
	} `json:"amenities"`
}

type reviewDTO struct {
	ID   string `json:"id"`
	User *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"user"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (d placeDTO) toDomain() domain.Place {
	p := domain.Place{
		ID:          d.ID,
		Title:       d.Title,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
	}
	if d.Owner != nil {
		p.Owner = &domain.Owner{FirstName: d.Owner.FirstName, LastName: d.Owner.LastName}
	}
	for _, a := range d.Amenities {
		p.Amenities = append(p.Amenities, domain.Amenity{Name: a.Name})
	}
	return p
}

func (d reviewDTO) toDomain() domain.Review {
	r := domain.Review{ID: d.ID, Text: d.Text, Rating: d.Rating}
	if d.User != nil {
		r.User = &domain.Reviewer{FirstName: d.User.FirstName, LastName: d.User.LastName}
	}
	return r
}

// ---- Public API ----

func (c *Client) ListPlaces(ctx context.Context, token string) ([]domain.Place, error) {
	var env struct {
		Result []placeDTO `json:"result"`
	}
	if err := c.get(ctx, c.base+"/places/", token, &env); err != nil {
		return nil, err
	}
	out := make([]domain.Place, 0, len(env.Result))
	for _, d := range env.Result {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) GetPlace(ctx context.Context, id, token string) (domain.Place, error) {
	var env struct {
		Result placeDTO `json:"result"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/places/%s", c.base, id), token, &env); err != nil {
		return domain.Place{}, err
	}
	return env.Result.toDomain(), nil
}

// ListPlaceReviews treats an upstream 404 as "no reviews yet" and returns an
// empty slice, not an error.
func (c *Client) ListPlaceReviews(ctx context.Context, id string) ([]domain.Review, error) {
	var dtos []reviewDTO
	err := c.get(ctx, fmt.Sprintf("%s/reviews/place/%s", c.base, id), "", &dtos)
	if errors.Is(err, ErrNotFound) {
		return []domain.Review{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) GetAverageRating(ctx context.Context, id string) (float64, error) {
	var body struct {
		AverageRating float64 `json:"average_rating"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/places/average/%s", c.base, id), "", &body); err != nil {
		return 0, err
	}
	return body.AverageRating, nil
}

func (c *Client) SubmitReview(ctx context.Context, token, placeID, text string, rating int) (domain.Review, error) {
	payload, err := json.Marshal(map[string]any{
		"place_id": placeID,
		"text":     text,
		"rating":   rating,
	})
	if err != nil {
		return domain.Review{}, err
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/reviews", bytes.NewReader(payload))
	if err != nil {
		return domain.Review{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	if err := c.rl.Wait(ctx); err != nil {
		return domain.Review{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Review{}, ctx.Err()
		}
		return domain.Review{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("hbnb", "submit_review", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var d reviewDTO
		if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
			return domain.Review{}, err
		}
		return d.toDomain(), nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Surface the server's own message when it sent one.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var rej struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &rej) == nil && rej.Error != "" {
			return domain.Review{}, &Rejection{Status: resp.StatusCode, Message: rej.Error}
		}
		return domain.Review{}, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.Review{}, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

// ---- Internals ----

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After when provided.
// The bearer header is attached only when token is non-empty.
func (c *Client) get(ctx context.Context, url, token string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	endpoint := endpointLabel(url, c.base)
	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hbnb-web/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("hbnb", endpoint, 0, time.Since(start))
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("hbnb", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &StatusError{Status: resp.StatusCode}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		}
	}

	return lastErr
}

// endpointLabel trims the base and any resource ids so metrics labels stay
// low-cardinality (e.g. "/places/42" -> "/places").
func endpointLabel(url, base string) string {
	p := strings.TrimPrefix(url, base)
	parts := strings.SplitN(strings.Trim(p, "/"), "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "/"
	}
	return "/" + parts[0]
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
