package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"signboard/pkg/feed"
	"signboard/pkg/weather"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"feeds":   len(s.feeds.Names()),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedsListHandler returns the status summary of every configured feed
func (s *Server) feedsListHandler(w http.ResponseWriter, r *http.Request) {
	names := s.feeds.Names()
	infos := make([]feed.FeedInfo, 0, len(names))
	for _, name := range names {
		info, err := s.feeds.Info(name)
		if err != nil {
			log.Printf("[WARN] failed to get info for feed %q: %v", name, err)
			continue
		}
		infos = append(infos, info)
	}
	renderJSON(w, r, http.StatusOK, infos)
}

// feedInfoHandler returns the status summary of one feed
func (s *Server) feedInfoHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	info, err := s.feeds.Info(name)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			renderError(w, r, fmt.Errorf("feed %q not found", name), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get feed info: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, info)
}

// itemsAPIHandler returns the rendered items of one feed as JSON
func (s *Server) itemsAPIHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	items, err := s.feeds.Items(name, limit)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			renderError(w, r, fmt.Errorf("feed %q not found", name), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, items)
}

// addItemHandler inserts a manually created item into a feed from posted
// form fields. The item joins the collection under the usual identity rules,
// a duplicate reports 409.
func (s *Server) addItemHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := r.ParseForm(); err != nil {
		renderError(w, r, fmt.Errorf("invalid form data"), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		renderError(w, r, fmt.Errorf("title is required"), http.StatusBadRequest)
		return
	}

	start, err := feed.ParseEventTime(r.FormValue("start_time"))
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid start_time: %w", err), http.StatusBadRequest)
		return
	}
	end := start
	if v := r.FormValue("end_time"); v != "" {
		if end, err = feed.ParseEventTime(v); err != nil {
			renderError(w, r, fmt.Errorf("invalid end_time: %w", err), http.StatusBadRequest)
			return
		}
	}

	item := &feed.Item{
		Title:       title,
		Description: r.FormValue("description"),
		Published:   time.Now(),
		Start:       start,
		End:         end,
		Location:    r.FormValue("location"),
	}

	created, err := s.feeds.AddItem(name, item)
	switch {
	case errors.Is(err, feed.ErrNotFound):
		renderError(w, r, fmt.Errorf("feed %q not found", name), http.StatusNotFound)
		return
	case errors.Is(err, feed.ErrInvalidDate):
		renderError(w, r, err, http.StatusBadRequest)
		return
	case errors.Is(err, feed.ErrNotReady):
		renderError(w, r, err, http.StatusConflict)
		return
	case err != nil:
		log.Printf("[ERROR] failed to add item: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if !created {
		renderError(w, r, fmt.Errorf("item already exists"), http.StatusConflict)
		return
	}

	renderJSON(w, r, http.StatusCreated, map[string]string{"id": item.ID()})
}

// weatherAPIHandler returns both weather snapshots as JSON
func (s *Server) weatherAPIHandler(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		renderError(w, r, fmt.Errorf("weather not enabled"), http.StatusNotFound)
		return
	}

	current, forecast := s.weather.Latest()
	resp := struct {
		Current  *weather.Current  `json:"current"`
		Forecast *weather.Forecast `json:"forecast"`
	}{Current: current, Forecast: forecast}
	renderJSON(w, r, http.StatusOK, resp)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
