package httpserver

import (
	"html/template"
	"io"

	"hbnb_web/internal/domain"
)

// The templates are the thin adapter between pure view models and the page.
// Each render replaces its whole section, so re-rendering is idempotent.

type listingData struct {
	LoggedIn  bool
	MaxPrice  string
	Nodes     []domain.ListingNode
	HasHidden bool
}

type detailData struct {
	LoggedIn bool
	View     domain.DetailView
}

type reviewFormData struct {
	PlaceID string
	Text    string
	Rating  int
	Message string
}

const listingTmpl = `<!DOCTYPE html>
<html>
<head><title>HBnB - Places</title></head>
<body>
<header>
  {{if not .LoggedIn}}<a id="login-link" href="/login">Login</a>{{end}}
</header>
<section id="filter">
  <form method="get" action="/">
    <label for="max_price">Max price:</label>
    <select name="max_price" id="max_price" onchange="this.form.submit()">
      <option value="All"{{if eq .MaxPrice ""}} selected{{end}}>All</option>
      {{range $p := sampleCeilings}}
      <option value="{{$p}}"{{if eq $.MaxPrice $p}} selected{{end}}>{{$p}}</option>
      {{end}}
    </select>
  </form>
</section>
<section id="places-list">
  {{range .Nodes}}{{if .Visible}}
  <article class="place-card" data-id="{{.PlaceID}}" data-price="{{.Price}}">
    {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
    <h2>{{.Title}}</h2>
    <p class="price">Price per night: ${{.PriceLabel}}</p>
    <p class="rating">{{.Stars}}</p>
    <a href="/place/{{.PlaceID}}">View Details</a>
  </article>
  {{end}}{{end}}
</section>
{{if .HasHidden}}<p class="filter-note">Some places are hidden by the price filter.</p>{{end}}
</body>
</html>`

const detailTmpl = `<!DOCTYPE html>
<html>
<head><title>HBnB - {{.View.Title}}</title></head>
<body>
<section id="place-details">
  <h1>{{.View.Title}}</h1>
  {{if .View.Host}}<p class="host">Hosted by {{.View.Host}}</p>{{end}}
  <p class="price">Price per night: ${{.View.PriceLabel}}</p>
  <p class="description">{{.View.Description}}</p>
  <p class="rating">{{.View.Stars}} ({{.View.AverageRating}})</p>
  <section id="amenities">
    <h2>Amenities</h2>
    {{if .View.NoAmenities}}
    <p class="placeholder">No amenities listed.</p>
    {{else}}
    <ul>
      {{range .View.Amenities}}<li><img src="/{{.Icon}}" alt=""> {{.Name}}</li>{{end}}
    </ul>
    {{end}}
  </section>
</section>
<section id="reviews">
  <h2>Reviews</h2>
  {{if .View.NoReviews}}
  <p class="placeholder">No reviews yet. Be the first to review!</p>
  {{else}}
  {{range .View.Reviews}}
  <article class="review-card">
    <p><strong>{{.Author}}:</strong></p>
    <p>{{.Text}}</p>
    <p>Rating: {{.Stars}}</p>
  </article>
  {{end}}
  {{end}}
  {{if .LoggedIn}}
  <a id="add-review" href="/place/{{.View.PlaceID}}/review">Add a review</a>
  {{end}}
</section>
</body>
</html>`

const reviewFormTmpl = `<!DOCTYPE html>
<html>
<head><title>HBnB - Add Review</title></head>
<body>
{{if .Message}}<p class="flash">{{.Message}}</p>{{end}}
<form id="review-form" method="post" action="/place/{{.PlaceID}}/review">
  <label for="review-text">Your review:</label>
  <textarea id="review-text" name="text">{{.Text}}</textarea>
  <label for="review-rating">Rating:</label>
  <select id="review-rating" name="rating">
    {{range $r := ratings}}
    <option value="{{$r}}"{{if eq $.Rating $r}} selected{{end}}>{{$r}}</option>
    {{end}}
  </select>
  <button type="submit">Submit</button>
</form>
</body>
</html>`

const loginTmpl = `<!DOCTYPE html>
<html>
<head><title>HBnB - Login</title></head>
<body>
<p>You need to log in to continue. Sign in on the main site to get a session.</p>
<a href="/">Back to places</a>
</body>
</html>`

type pageTemplates struct {
	listing    *template.Template
	detail     *template.Template
	reviewForm *template.Template
	login      *template.Template
}

func newTemplates() *pageTemplates {
	funcs := template.FuncMap{
		"sampleCeilings": func() []string { return []string{"10", "50", "100", "200", "500"} },
		"ratings":        func() []int { return []int{1, 2, 3, 4, 5} },
	}
	return &pageTemplates{
		listing:    template.Must(template.New("listing").Funcs(funcs).Parse(listingTmpl)),
		detail:     template.Must(template.New("detail").Funcs(funcs).Parse(detailTmpl)),
		reviewForm: template.Must(template.New("review").Funcs(funcs).Parse(reviewFormTmpl)),
		login:      template.Must(template.New("login").Funcs(funcs).Parse(loginTmpl)),
	}
}

func (t *pageTemplates) render(w io.Writer, tmpl *template.Template, data any) error {
	return tmpl.Execute(w, data)
}
