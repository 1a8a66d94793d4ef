package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hbnb_web/internal/adapters/hbnb"
	"hbnb_web/internal/app"
	"hbnb_web/internal/domain"
	"hbnb_web/internal/session"
	"hbnb_web/internal/view"
)

type Handlers struct {
	Pages *app.PageService
	Flow  *app.ReviewFlow

	tmpl *pageTemplates
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	h.tmpl = newTemplates()

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.listingPage)
	s.mux.Get("/login", h.loginPage)
	s.mux.Get("/place/{id}", h.detailPage)
	s.mux.Get("/place/{id}/review", h.reviewForm)
	s.mux.Post("/place/{id}/review", h.submitReview)
	s.mux.Get("/api/listings", h.listingsJSON)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func (h *Handlers) renderHTML(w http.ResponseWriter, status int, tmplName string, data any) {
	var err error
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	switch tmplName {
	case "listing":
		err = h.tmpl.render(w, h.tmpl.listing, data)
	case "detail":
		err = h.tmpl.render(w, h.tmpl.detail, data)
	case "review":
		err = h.tmpl.render(w, h.tmpl.reviewForm, data)
	case "login":
		err = h.tmpl.render(w, h.tmpl.login, data)
	}
	if err != nil {
		log.Error().Err(err).Str("template", tmplName).Msg("template render failed")
	}
}

// GET / — the listing page. ?max_price= narrows by price ceiling; "All" or
// absence shows everything.
func (h *Handlers) listingPage(w http.ResponseWriter, r *http.Request) {
	token := session.FromRequest(r)
	raw := r.URL.Query().Get("max_price")
	threshold, ok := view.ParseThreshold(raw)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", "max_price must be 'All' or a non-negative number")
		return
	}

	page, err := h.Pages.Listings(r.Context(), token, threshold)
	if err != nil {
		log.Error().Err(err).Msg("listing page load failed")
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "could not load places")
		return
	}

	hidden := false
	for _, n := range page.Nodes {
		if !n.Visible {
			hidden = true
			break
		}
	}
	h.renderHTML(w, http.StatusOK, "listing", listingData{
		LoggedIn:  token != "",
		MaxPrice:  normalizeMaxPrice(raw),
		Nodes:     page.Nodes,
		HasHidden: hidden,
	})
}

// normalizeMaxPrice keeps the select box in sync: "All" and "" both mean no
// filter and render as the default option.
func normalizeMaxPrice(raw string) string {
	if t, ok := view.ParseThreshold(raw); ok && t.All {
		return ""
	}
	return raw
}

// GET /place/{id}
func (h *Handlers) detailPage(w http.ResponseWriter, r *http.Request) {
	token := session.FromRequest(r)
	id := chi.URLParam(r, "id")

	dv, err := h.Pages.Detail(r.Context(), token, id)
	if err != nil {
		if errors.Is(err, hbnb.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "place not found")
			return
		}
		log.Error().Err(err).Str("place_id", id).Msg("detail page load failed")
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "could not load place")
		return
	}

	h.renderHTML(w, http.StatusOK, "detail", detailData{LoggedIn: token != "", View: dv})
}

// GET /place/{id}/review — anonymous visitors go to the login page instead.
func (h *Handlers) reviewForm(w http.ResponseWriter, r *http.Request) {
	if session.FromRequest(r) == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.renderHTML(w, http.StatusOK, "review", reviewFormData{PlaceID: chi.URLParam(r, "id")})
}

// POST /place/{id}/review
func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	token := session.FromRequest(r)
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", "could not parse form body")
		return
	}
	text := r.PostFormValue("text")
	rating, _ := strconv.Atoi(r.PostFormValue("rating"))

	out := h.Flow.Submit(r.Context(), token, id, text, rating)
	switch {
	case out.LoginRequired:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case out.State == app.StateSucceeded:
		// redirect clears the form and shows the fresh review
		http.Redirect(w, r, "/place/"+id, http.StatusSeeOther)
	default:
		// validation or submit failure: re-render the form with the message and
		// the visitor's input preserved
		h.renderHTML(w, http.StatusOK, "review", reviewFormData{
			PlaceID: id,
			Text:    text,
			Rating:  rating,
			Message: out.Message,
		})
	}
}

// loginPage is a stub: token issuance lives outside this service.
func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, http.StatusOK, "login", nil)
}

// GET /api/listings — the JSON fragment browser scripts use for live
// filtering without a full page reload.
func (h *Handlers) listingsJSON(w http.ResponseWriter, r *http.Request) {
	token := session.FromRequest(r)
	threshold, ok := view.ParseThreshold(r.URL.Query().Get("max_price"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", "max_price must be 'All' or a non-negative number")
		return
	}

	page, err := h.Pages.Listings(r.Context(), token, threshold)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "could not load places")
		return
	}

	resp := struct {
		Result []domain.ListingNode `json:"result"`
	}{Result: page.Nodes}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to write listings JSON")
	}
}
