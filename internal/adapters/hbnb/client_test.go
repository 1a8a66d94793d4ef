package hbnb_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hbnb_web/internal/adapters/hbnb"
)

func newClient(t *testing.T, base string) *hbnb.Client {
	t.Helper()
	cl, err := hbnb.New(base, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestListPlaces_EnvelopeAndBearer(t *testing.T) {
	var gotAuth, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{
			{"id": "p1", "title": "Loft", "price": 120.5},
			{"id": "p2", "title": "Cabin"},
		}})
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	places, err := cl.ListPlaces(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotPath != "/places/" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(places) != 2 || places[0].ID != "p1" || places[0].Price == nil || *places[0].Price != 120.5 {
		t.Fatalf("unexpected places: %+v", places)
	}
	if places[1].Price != nil {
		t.Fatalf("expected nil price for p2, got %v", *places[1].Price)
	}
}

func TestListPlaces_AnonymousSendsNoAuthHeader(t *testing.T) {
	var sawAuth atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			sawAuth.Store(true)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": []map[string]any{}})
	}))
	defer ts.Close()

	places, err := newClient(t, ts.URL).ListPlaces(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sawAuth.Load() {
		t.Fatal("anonymous request must not carry an Authorization header")
	}
	if len(places) != 0 {
		t.Fatalf("expected empty list, got %d", len(places))
	}
}

func TestGetPlace_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{
				"id": "p7", "title": "Villa",
				"owner":     map[string]any{"first_name": "Ada", "last_name": "Lovelace"},
				"amenities": []map[string]any{{"name": "WiFi"}},
			}})
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := newClient(t, ts.URL).GetPlace(ctx, "p7", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID != "p7" || p.Owner == nil || p.Owner.FirstName != "Ada" || len(p.Amenities) != 1 {
		t.Fatalf("unexpected place: %+v", p)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestGetPlace_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := newClient(t, ts.URL).GetPlace(context.Background(), "missing", "")
	if !errors.Is(err, hbnb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPlaceReviews_404MeansEmpty(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	revs, err := newClient(t, ts.URL).ListPlaceReviews(context.Background(), "p1")
	if err != nil {
		t.Fatalf("404 on review listing must not be an error, got %v", err)
	}
	if revs == nil || len(revs) != 0 {
		t.Fatalf("expected empty slice, got %#v", revs)
	}
}

func TestListPlaceReviews_ServerErrorStillFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListPlaceReviews(context.Background(), "p1")
	if !errors.Is(err, hbnb.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetAverageRating(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/average/p3" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"average_rating": 4.3})
	}))
	defer ts.Close()

	avg, err := newClient(t, ts.URL).GetAverageRating(context.Background(), "p3")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if avg != 4.3 {
		t.Fatalf("avg = %v", avg)
	}
}

func TestSubmitReview_Created(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reviews" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["place_id"] != "p1" || body["text"] != "Great stay" || body["rating"] != 3.0 {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "r9", "text": "Great stay", "rating": 3})
	}))
	defer ts.Close()

	rv, err := newClient(t, ts.URL).SubmitReview(context.Background(), "tok", "p1", "Great stay", 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rv.ID != "r9" || rv.Rating != 3 {
		t.Fatalf("unexpected review: %+v", rv)
	}
}

func TestSubmitReview_RejectionSurfacesServerMessage(t *testing.T) {
	const msg = "You have already reviewed this place"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).SubmitReview(context.Background(), "tok", "p1", "again", 4)
	var rej *hbnb.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	if rej.Message != msg {
		t.Fatalf("message = %q, want %q", rej.Message, msg)
	}
	if rej.Status != 400 {
		t.Fatalf("status = %d", rej.Status)
	}
}

func TestSubmitReview_PlainErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).SubmitReview(context.Background(), "tok", "p1", "x", 4)
	var se *hbnb.StatusError
	if !errors.As(err, &se) || se.Status != 400 {
		t.Fatalf("expected *StatusError 400, got %v", err)
	}
}
