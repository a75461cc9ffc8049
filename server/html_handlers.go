package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"signboard/pkg/feed"
	"signboard/pkg/weather"
)

// feedView is one feed entry on the display page
type feedView struct {
	Name  string
	Title string
}

// displayHandler renders the full display page. The page polls the fragment
// endpoints for content, this handler only lays out the sections.
func (s *Server) displayHandler(w http.ResponseWriter, _ *http.Request) {
	names := s.feeds.Names()
	views := make([]feedView, 0, len(names))
	for _, name := range names {
		title := name
		if info, err := s.feeds.Info(name); err == nil && info.Title != "" {
			title = info.Title
		}
		views = append(views, feedView{Name: name, Title: title})
	}

	data := struct {
		PageTitle  string
		Feeds      []feedView
		HasWeather bool
	}{
		PageTitle:  s.config.GetPageTitle(),
		Feeds:      views,
		HasWeather: s.weather != nil,
	}

	if err := s.renderPage(w, "display.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
	}
}

// feedPageHandler renders a full-screen page for a single feed, used when a
// display is dedicated to one board instead of the combined layout.
func (s *Server) feedPageHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	info, err := s.feeds.Info(name)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			http.Error(w, "feed not found", http.StatusNotFound)
			return
		}
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load feed", err)
		return
	}

	title := info.Title
	if title == "" {
		title = name
	}

	data := struct {
		PageTitle string
		Name      string
		Title     string
	}{PageTitle: title, Name: name, Title: title}

	if err := s.renderPage(w, "feed.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
	}
}

// feedItemsHandler serves the rendered item list fragment for one feed.
// Responses carry Last-Modified keyed on the last visible change, so the
// display polls cheaply with If-Modified-Since.
func (s *Server) feedItemsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := s.feeds.Items(name, limit)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			http.Error(w, "feed not found", http.StatusNotFound)
			return
		}
		s.respondWithError(w, http.StatusInternalServerError, "Failed to load items", err)
		return
	}

	if lastApplied := s.feeds.LastApplied(name); !lastApplied.IsZero() {
		if notModifiedSince(w, r, lastApplied) {
			return
		}
	}

	data := struct {
		Name  string
		Items []feed.RenderedItem
	}{Name: name, Items: items}

	if err := s.templates.ExecuteTemplate(w, "feed-items.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render items", err)
	}
}

// weatherFragmentHandler serves the weather panel fragment. Last-Modified
// follows the newest snapshot fetch time.
func (s *Server) weatherFragmentHandler(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		http.Error(w, "weather not enabled", http.StatusNotFound)
		return
	}

	current, forecast := s.weather.Latest()
	if modified := latestFetch(current, forecast); !modified.IsZero() {
		if notModifiedSince(w, r, modified) {
			return
		}
	}

	data := struct {
		Current  *weather.Current
		Forecast *weather.Forecast
	}{Current: current, Forecast: forecast}

	if err := s.templates.ExecuteTemplate(w, "weather.html", data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render weather", err)
	}
}

// renderPage renders a pre-parsed page template
func (s *Server) renderPage(w http.ResponseWriter, templateName string, data interface{}) error {
	tmpl, ok := s.pageTemplates[templateName]
	if !ok {
		return fmt.Errorf("template %s not found", templateName)
	}
	return tmpl.ExecuteTemplate(w, templateName, data)
}

// respondWithError logs the failure and sends a plain http error
func (s *Server) respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	log.Printf("[WARN] %s: %v", msg, err)
	http.Error(w, msg, code)
}

// notModifiedSince sets Last-Modified and answers 304 when the client copy
// is still current. HTTP dates carry second precision, so the comparison
// truncates first.
func notModifiedSince(w http.ResponseWriter, r *http.Request, modified time.Time) bool {
	w.Header().Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	ims := r.Header.Get("If-Modified-Since")
	if ims == "" {
		return false
	}
	since, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	if modified.Truncate(time.Second).After(since) {
		return false
	}
	w.WriteHeader(http.StatusNotModified)
	return true
}

// latestFetch picks the newer of the two snapshot timestamps
func latestFetch(current *weather.Current, forecast *weather.Forecast) time.Time {
	var ts time.Time
	if current != nil {
		ts = current.FetchedAt
	}
	if forecast != nil && forecast.FetchedAt.After(ts) {
		ts = forecast.FetchedAt
	}
	return ts
}
