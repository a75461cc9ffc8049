package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signboard/pkg/feed"
	"signboard/pkg/weather"
	"signboard/server/mocks"
)

func TestServer_displayHandler(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
		GetPageTitleFunc: func() string { return "Glocester Town Hall" },
	}
	feeds := &mocks.FeedServiceMock{
		NamesFunc: func() []string { return []string{"council", "recreation"} },
		InfoFunc: func(name string) (feed.FeedInfo, error) {
			if name == "council" {
				return feed.FeedInfo{Name: "council", Title: "Town Council"}, nil
			}
			return feed.FeedInfo{}, feed.ErrNotReady
		},
	}

	t.Run("without weather", func(t *testing.T) {
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/", http.NoBody)
		w := httptest.NewRecorder()
		srv.displayHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<h1>Glocester Town Hall</h1>")
		assert.Contains(t, body, `id="feed-council"`)
		assert.Contains(t, body, "<h2>Town Council</h2>")
		assert.Contains(t, body, `hx-get="/feeds/council/items"`)
		// feed without a built title falls back to its name
		assert.Contains(t, body, "<h2>recreation</h2>")
		assert.NotContains(t, body, `hx-get="/weather"`)
	})

	t.Run("with weather", func(t *testing.T) {
		wthr := &mocks.WeatherServiceMock{}
		srv := testServer(t, cfg, feeds, wthr)

		req := httptest.NewRequest("GET", "/", http.NoBody)
		w := httptest.NewRecorder()
		srv.displayHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `hx-get="/weather"`)
	})
}

func TestServer_feedPageHandler(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}

	t.Run("renders feed page", func(t *testing.T) {
		feeds := &mocks.FeedServiceMock{
			InfoFunc: func(name string) (feed.FeedInfo, error) {
				return feed.FeedInfo{Name: "council", Title: "Town Council"}, nil
			},
		}
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/feeds/council", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedPageHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>Town Council</title>")
		assert.Contains(t, body, "<h1>Town Council</h1>")
		assert.Contains(t, body, `hx-get="/feeds/council/items"`)
	})

	t.Run("title falls back to name", func(t *testing.T) {
		feeds := &mocks.FeedServiceMock{
			InfoFunc: func(name string) (feed.FeedInfo, error) {
				return feed.FeedInfo{Name: "council"}, nil
			},
		}
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/feeds/council", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedPageHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h1>council</h1>")
	})

	t.Run("unknown feed", func(t *testing.T) {
		feeds := &mocks.FeedServiceMock{
			InfoFunc: func(name string) (feed.FeedInfo, error) {
				return feed.FeedInfo{}, feed.ErrNotFound
			},
		}
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/feeds/ghost", http.NoBody)
		req.SetPathValue("name", "ghost")
		w := httptest.NewRecorder()
		srv.feedPageHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "feed not found")
	})
}

func TestServer_feedItemsHandler(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}

	applied := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 5, 2, 19, 0, 0, 0, time.UTC)

	feedsMock := func(items []feed.RenderedItem, err error) *mocks.FeedServiceMock {
		return &mocks.FeedServiceMock{
			ItemsFunc: func(name string, limit int) ([]feed.RenderedItem, error) {
				return items, err
			},
			LastAppliedFunc: func(name string) time.Time { return applied },
		}
	}

	t.Run("renders items", func(t *testing.T) {
		items := []feed.RenderedItem{
			{
				ID:        "Town Council Meeting || 1714676400000",
				Title:     "Town Council Meeting",
				Start:     start,
				End:       start.Add(2 * time.Hour),
				TimeLabel: "7:00 PM",
				Address:   "1 Main St",
				City:      "Chepachet",
				Sections:  []feed.Section{{Heading: "Agenda", Body: "Budget review"}},
			},
			{
				ID:          "Book Sale || 1714762800000",
				Title:       "Book Sale",
				Start:       start.Add(24 * time.Hour),
				TimeLabel:   "All day",
				Description: template.HTML("<p>Friends of the library</p>"),
			},
		}
		srv := testServer(t, cfg, feedsMock(items, nil), nil)

		req := httptest.NewRequest("GET", "/feeds/council/items", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Town Council Meeting")
		assert.Contains(t, body, "7:00 PM")
		assert.Contains(t, body, "1 Main St, Chepachet")
		assert.Contains(t, body, "<dt>Agenda</dt>")
		assert.Contains(t, body, "<dd>Budget review</dd>")
		// sanitized description renders as markup, not escaped text
		assert.Contains(t, body, "<p>Friends of the library</p>")
		assert.Equal(t, applied.Format(http.TimeFormat), w.Header().Get("Last-Modified"))
	})

	t.Run("empty feed", func(t *testing.T) {
		srv := testServer(t, cfg, feedsMock([]feed.RenderedItem{}, nil), nil)

		req := httptest.NewRequest("GET", "/feeds/council/items", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Nothing scheduled.")
	})

	t.Run("limit parameter", func(t *testing.T) {
		feeds := feedsMock([]feed.RenderedItem{}, nil)
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/feeds/council/items?limit=5", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, feeds.ItemsCalls(), 1)
		assert.Equal(t, 5, feeds.ItemsCalls()[0].Limit)
	})

	t.Run("bad limit ignored", func(t *testing.T) {
		feeds := feedsMock([]feed.RenderedItem{}, nil)
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/feeds/council/items?limit=abc", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, feeds.ItemsCalls(), 1)
		assert.Equal(t, 0, feeds.ItemsCalls()[0].Limit)
	})

	t.Run("unknown feed", func(t *testing.T) {
		srv := testServer(t, cfg, feedsMock(nil, fmt.Errorf("get feed: %w", feed.ErrNotFound)), nil)

		req := httptest.NewRequest("GET", "/feeds/ghost/items", http.NoBody)
		req.SetPathValue("name", "ghost")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "feed not found")
	})

	t.Run("internal error", func(t *testing.T) {
		srv := testServer(t, cfg, feedsMock(nil, feed.ErrInconsistent), nil)

		req := httptest.NewRequest("GET", "/feeds/council/items", http.NoBody)
		req.SetPathValue("name", "council")
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to load items")
	})

	t.Run("not modified", func(t *testing.T) {
		srv := testServer(t, cfg, feedsMock([]feed.RenderedItem{}, nil), nil)

		req := httptest.NewRequest("GET", "/feeds/council/items", http.NoBody)
		req.SetPathValue("name", "council")
		req.Header.Set("If-Modified-Since", applied.Format(http.TimeFormat))
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("modified since client copy", func(t *testing.T) {
		srv := testServer(t, cfg, feedsMock([]feed.RenderedItem{}, nil), nil)

		req := httptest.NewRequest("GET", "/feeds/council/items", http.NoBody)
		req.SetPathValue("name", "council")
		req.Header.Set("If-Modified-Since", applied.Add(-time.Hour).Format(http.TimeFormat))
		w := httptest.NewRecorder()
		srv.feedItemsHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Nothing scheduled.")
	})
}

func TestServer_weatherFragmentHandler(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}
	feeds := &mocks.FeedServiceMock{}

	fetched := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

	t.Run("disabled", func(t *testing.T) {
		srv := testServer(t, cfg, feeds, nil)

		req := httptest.NewRequest("GET", "/weather", http.NoBody)
		w := httptest.NewRecorder()
		srv.weatherFragmentHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "weather not enabled")
	})

	t.Run("renders current and forecast", func(t *testing.T) {
		wthr := &mocks.WeatherServiceMock{
			LatestFunc: func() (*weather.Current, *weather.Forecast) {
				current := &weather.Current{
					City:      "Chepachet",
					Temp:      62.4,
					FeelsLike: 61.0,
					Label:     "moderate rain",
					Icon:      "10d",
					FetchedAt: fetched,
				}
				forecast := &weather.Forecast{
					City: "Chepachet",
					Days: []weather.ForecastDay{
						{DayShort: "Wed", TempMin: 48, TempMax: 58, Icon: "10d", Label: "light rain"},
						{DayShort: "Thu", TempMin: 55, TempMax: 66, Icon: "01d", Label: "clear sky"},
					},
					FetchedAt: fetched.Add(time.Hour),
				}
				return current, forecast
			},
		}
		srv := testServer(t, cfg, feeds, wthr)

		req := httptest.NewRequest("GET", "/weather", http.NoBody)
		w := httptest.NewRecorder()
		srv.weatherFragmentHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "62&deg;")
		assert.Contains(t, body, "moderate rain")
		assert.Contains(t, body, "Feels like 61&deg;")
		assert.Contains(t, body, "img/wn/10d@2x.png")
		assert.Contains(t, body, "Chepachet")
		assert.Contains(t, body, ">Wed<")
		assert.Contains(t, body, ">Thu<")
		// newer of the two snapshots drives Last-Modified
		assert.Equal(t, fetched.Add(time.Hour).Format(http.TimeFormat), w.Header().Get("Last-Modified"))
	})

	t.Run("no snapshots yet", func(t *testing.T) {
		wthr := &mocks.WeatherServiceMock{
			LatestFunc: func() (*weather.Current, *weather.Forecast) { return nil, nil },
		}
		srv := testServer(t, cfg, feeds, wthr)

		req := httptest.NewRequest("GET", "/weather", http.NoBody)
		w := httptest.NewRecorder()
		srv.weatherFragmentHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Weather unavailable.")
		assert.Empty(t, w.Header().Get("Last-Modified"))
	})

	t.Run("not modified", func(t *testing.T) {
		wthr := &mocks.WeatherServiceMock{
			LatestFunc: func() (*weather.Current, *weather.Forecast) {
				return &weather.Current{City: "Chepachet", FetchedAt: fetched}, nil
			},
		}
		srv := testServer(t, cfg, feeds, wthr)

		req := httptest.NewRequest("GET", "/weather", http.NoBody)
		req.Header.Set("If-Modified-Since", fetched.Format(http.TimeFormat))
		w := httptest.NewRecorder()
		srv.weatherFragmentHandler(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestNotModifiedSince(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 500_000_000, time.UTC)

	tests := []struct {
		name     string
		ims      string
		expected bool
	}{
		{"no header", "", false},
		{"client copy current", modified.Format(http.TimeFormat), true},
		{"client copy newer", modified.Add(time.Hour).Format(http.TimeFormat), true},
		{"client copy stale", modified.Add(-time.Hour).Format(http.TimeFormat), false},
		{"malformed header", "yesterday-ish", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			if tt.ims != "" {
				req.Header.Set("If-Modified-Since", tt.ims)
			}
			w := httptest.NewRecorder()

			got := notModifiedSince(w, req, modified)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, modified.Format(http.TimeFormat), w.Header().Get("Last-Modified"))
			if tt.expected {
				assert.Equal(t, http.StatusNotModified, w.Code)
			}
		})
	}
}
