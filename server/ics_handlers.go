package server

import (
	"errors"
	"log"
	"net/http"

	"signboard/pkg/feed"
)

// calendarHandler serves one feed as an iCalendar document, so staff can
// subscribe to the lobby schedule from their own calendar apps.
func (s *Server) calendarHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	events, err := s.feeds.Events(name)
	if err != nil {
		if errors.Is(err, feed.ErrNotFound) {
			http.Error(w, "feed not found", http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get events for calendar: %v", err)
		http.Error(w, "Failed to generate calendar", http.StatusInternalServerError)
		return
	}

	title := name
	if info, ierr := s.feeds.Info(name); ierr == nil && info.Title != "" {
		title = info.Title
	}

	generator := feed.NewGenerator()
	ics := generator.GenerateICS(title, events)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if _, err := w.Write([]byte(ics)); err != nil {
		log.Printf("[ERROR] failed to write calendar response: %v", err)
	}
}
