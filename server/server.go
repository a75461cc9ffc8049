package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"signboard/pkg/feed"
	"signboard/pkg/weather"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feeds.go -pkg mocks -skip-ensure -fmt goimports . FeedService
//go:generate moq -out mocks/weather.go -pkg mocks -skip-ensure -fmt goimports . WeatherService

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	feeds   FeedService
	weather WeatherService
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle

	templates     *template.Template            // shared fragment templates
	pageTemplates map[string]*template.Template // full pages with the base layout
}

// FeedService provides rendered feed data for the display and the API.
type FeedService interface {
	Names() []string
	Items(name string, limit int) ([]feed.RenderedItem, error)
	Events(name string) ([]feed.Item, error)
	AddItem(name string, it *feed.Item) (bool, error)
	Info(name string) (feed.FeedInfo, error)
	LastApplied(name string) time.Time
}

// WeatherService provides the latest weather snapshots. Optional, nil when
// weather is disabled.
type WeatherService interface {
	Latest() (current *weather.Current, forecast *weather.Forecast)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPageTitle() string
}

// New initializes a new server instance
func New(cfg ConfigProvider, feeds FeedService, weather WeatherService, version string, debug bool) (*Server, error) {
	s := &Server{
		config:  cfg,
		feeds:   feeds,
		weather: weather,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// loadTemplates parses the embedded templates, full pages get the base
// layout, fragments share one set.
func (s *Server) loadTemplates() error {
	fragments, err := template.ParseFS(templatesFS, "templates/feed-items.html", "templates/weather.html")
	if err != nil {
		return fmt.Errorf("parse fragments: %w", err)
	}
	s.templates = fragments

	s.pageTemplates = map[string]*template.Template{}
	for _, name := range []string{"display.html", "feed.html"} {
		tmpl, perr := template.ParseFS(templatesFS, "templates/base.html", "templates/"+name)
		if perr != nil {
			return fmt.Errorf("parse page %s: %w", name, perr)
		}
		s.pageTemplates[name] = tmpl
	}
	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("signboard", "signboard", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// display pages and fragments
	s.router.HandleFunc("GET /{$}", s.displayHandler)
	s.router.HandleFunc("GET /feeds/{name}", s.feedPageHandler)
	s.router.HandleFunc("GET /feeds/{name}/items", s.feedItemsHandler)
	s.router.HandleFunc("POST /feeds/{name}/items", s.addItemHandler)
	s.router.HandleFunc("GET /weather", s.weatherFragmentHandler)

	// calendar export
	s.router.HandleFunc("GET /feeds/{name}/calendar.ics", s.calendarHandler)

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feeds", s.feedsListHandler)
		r.HandleFunc("GET /feeds/{name}", s.feedInfoHandler)
		r.HandleFunc("GET /feeds/{name}/items", s.itemsAPIHandler)
		r.HandleFunc("GET /weather", s.weatherAPIHandler)
	})
}
