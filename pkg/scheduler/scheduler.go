package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/feed_refresher.go -pkg mocks -skip-ensure -fmt goimports . FeedRefresher
//go:generate moq -out mocks/weather_updater.go -pkg mocks -skip-ensure -fmt goimports . WeatherUpdater
//go:generate moq -out mocks/cache_cleaner.go -pkg mocks -skip-ensure -fmt goimports . CacheCleaner

// Scheduler runs the background loops, one poll loop per configured feed
// plus weather refreshes and cache cleanup.
type Scheduler struct {
	feeds   FeedRefresher
	weather WeatherUpdater
	cleaner CacheCleaner

	sources          []FeedSource
	weatherInterval  time.Duration
	forecastInterval time.Duration
	cleanupInterval  time.Duration
	cleanupRetention time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// FeedRefresher runs one poll pass for a named feed.
type FeedRefresher interface {
	Refresh(ctx context.Context, name string) error
}

// WeatherUpdater refreshes the weather snapshots.
type WeatherUpdater interface {
	UpdateCurrent(ctx context.Context) error
	UpdateForecast(ctx context.Context) error
}

// CacheCleaner prunes expired cache entries and reports the removed count.
type CacheCleaner interface {
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// FeedSource names one feed and how often to poll it.
type FeedSource struct {
	Name     string
	Interval time.Duration
}

// Config holds scheduler intervals.
type Config struct {
	Feeds            []FeedSource
	WeatherInterval  time.Duration // current conditions cadence
	ForecastInterval time.Duration
	CleanupInterval  time.Duration
	CleanupRetention time.Duration // how long stale conditional-request validators live
}

// NewScheduler creates a scheduler. Weather and cleaner are optional, nil
// disables the corresponding loops.
func NewScheduler(feeds FeedRefresher, weather WeatherUpdater, cleaner CacheCleaner, cfg Config) *Scheduler {
	if cfg.WeatherInterval == 0 {
		cfg.WeatherInterval = 15 * time.Minute
	}
	if cfg.ForecastInterval == 0 {
		cfg.ForecastInterval = time.Hour
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Hour
	}
	if cfg.CleanupRetention == 0 {
		cfg.CleanupRetention = 30 * 24 * time.Hour
	}
	sources := make([]FeedSource, 0, len(cfg.Feeds))
	for _, src := range cfg.Feeds {
		if src.Interval == 0 {
			src.Interval = 5 * time.Minute
		}
		sources = append(sources, src)
	}

	return &Scheduler{
		feeds:            feeds,
		weather:          weather,
		cleaner:          cleaner,
		sources:          sources,
		weatherInterval:  cfg.WeatherInterval,
		forecastInterval: cfg.ForecastInterval,
		cleanupInterval:  cfg.CleanupInterval,
		cleanupRetention: cfg.CleanupRetention,
	}
}

// Start begins the loops. Every feed polls on its own ticker and the first
// pass runs right away so the display has data soon after boot.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, src := range s.sources {
		s.wg.Add(1)
		go s.feedWorker(ctx, src)
	}

	if s.weather != nil {
		s.wg.Add(1)
		go s.weatherWorker(ctx)
		s.wg.Add(1)
		go s.forecastWorker(ctx)
	}

	if s.cleaner != nil {
		s.wg.Add(1)
		go s.cleanupWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with %d feed loops, weather every %v, forecast every %v",
		len(s.sources), s.weatherInterval, s.forecastInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// feedWorker polls one feed on its own cadence. Failed polls are logged and
// the loop keeps going, the manager holds the last good collection.
func (s *Scheduler) feedWorker(ctx context.Context, src FeedSource) {
	defer s.wg.Done()

	ticker := time.NewTicker(src.Interval)
	defer ticker.Stop()

	s.refreshFeed(ctx, src.Name)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshFeed(ctx, src.Name)
		}
	}
}

func (s *Scheduler) refreshFeed(ctx context.Context, name string) {
	if err := s.feeds.Refresh(ctx, name); err != nil {
		lgr.Printf("[WARN] refresh feed %q: %v", name, err)
	}
}

// weatherWorker keeps current conditions fresh
func (s *Scheduler) weatherWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.weatherInterval)
	defer ticker.Stop()

	if err := s.weather.UpdateCurrent(ctx); err != nil {
		lgr.Printf("[WARN] update current conditions: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.weather.UpdateCurrent(ctx); err != nil {
				lgr.Printf("[WARN] update current conditions: %v", err)
			}
		}
	}
}

// forecastWorker keeps the daily outlook fresh on a slower cadence
func (s *Scheduler) forecastWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.forecastInterval)
	defer ticker.Stop()

	if err := s.weather.UpdateForecast(ctx); err != nil {
		lgr.Printf("[WARN] update forecast: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.weather.UpdateForecast(ctx); err != nil {
				lgr.Printf("[WARN] update forecast: %v", err)
			}
		}
	}
}

// cleanupWorker prunes expired cache entries
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.cleaner.Cleanup(ctx, s.cleanupRetention)
			if err != nil {
				lgr.Printf("[WARN] cache cleanup: %v", err)
				continue
			}
			if removed > 0 {
				lgr.Printf("[INFO] cache cleanup removed %d entries", removed)
			}
		}
	}
}
