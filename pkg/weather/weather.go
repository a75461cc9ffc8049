package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"signboard/pkg/config"
)

//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// Cache persists snapshots and resolved coordinates between restarts.
// Implemented by repository.Store.
type Cache interface {
	Get(ctx context.Context, key string) (payload []byte, fetchedAt time.Time, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

const (
	coordsKey   = "weather:coords"
	currentKey  = "weather:current"
	forecastKey = "weather:forecast"

	// snapshots older than a day are useless for warm starts
	snapshotTTL = 24 * time.Hour
)

// Coord is a lat/lon pair from the geocoding endpoint.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Current is the current-conditions snapshot shown on the display.
type Current struct {
	City      string    `json:"city"`
	Temp      float64   `json:"temp"`
	FeelsLike float64   `json:"feels_like"`
	Humidity  float64   `json:"humidity"`
	WindSpeed float64   `json:"wind_speed"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	Meteocon  string    `json:"meteocon"`
	Daytime   bool      `json:"daytime"`
	Units     string    `json:"units"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ForecastDay is one calendar day aggregated from the 3-hour forecast.
type ForecastDay struct {
	Date     time.Time `json:"date"`
	DayShort string    `json:"day_short"`
	DayFull  string    `json:"day_full"`
	Temp     float64   `json:"temp"`
	TempMin  float64   `json:"temp_min"`
	TempMax  float64   `json:"temp_max"`
	Humidity float64   `json:"humidity"`
	Rain     float64   `json:"rain"` // mean 3h rain volume
	Label    string    `json:"label"`
	Icon     string    `json:"icon"`
	Meteocon string    `json:"meteocon"`
}

// Forecast is the aggregated daily outlook snapshot.
type Forecast struct {
	City      string        `json:"city"`
	Days      []ForecastDay `json:"days"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Service polls OpenWeatherMap and keeps the latest snapshots for the
// display. Failed polls keep the previous snapshot in place.
type Service struct {
	cfg    config.WeatherConfig
	cache  Cache
	client *http.Client

	apiBase string
	geoBase string

	mu       sync.RWMutex
	loc      *Coord
	current  *Current
	forecast *Forecast
}

// NewService creates a weather service for the configured location.
func NewService(cfg config.WeatherConfig, cache Cache) *Service {
	return &Service{
		cfg:     cfg,
		cache:   cache,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: "https://api.openweathermap.org/data/2.5",
		geoBase: "http://api.openweathermap.org/geo/1.0",
	}
}

// Load warms the in-memory snapshots from the cache store so a restarted
// display is not blank while the first poll is in flight.
func (s *Service) Load(ctx context.Context) {
	if payload, _, found, err := s.cache.Get(ctx, currentKey); err == nil && found {
		var cur Current
		if uerr := json.Unmarshal(payload, &cur); uerr == nil {
			s.mu.Lock()
			s.current = &cur
			s.mu.Unlock()
			log.Printf("[DEBUG] current conditions warmed from cache, fetched %s", cur.FetchedAt.Format(time.RFC3339))
		}
	}
	if payload, _, found, err := s.cache.Get(ctx, forecastKey); err == nil && found {
		var fc Forecast
		if uerr := json.Unmarshal(payload, &fc); uerr == nil {
			s.mu.Lock()
			s.forecast = &fc
			s.mu.Unlock()
			log.Printf("[DEBUG] forecast warmed from cache, fetched %s", fc.FetchedAt.Format(time.RFC3339))
		}
	}
}

// Latest returns the most recent snapshots, nil for anything not fetched
// yet. Returned values are never mutated after publishing.
func (s *Service) Latest() (current *Current, forecast *Forecast) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.forecast
}

// UpdateCurrent fetches current conditions and publishes a new snapshot.
func (s *Service) UpdateCurrent(ctx context.Context) error {
	loc, err := s.coords(ctx)
	if err != nil {
		return err
	}

	var src apiCurrent
	if err := s.getJSON(ctx, s.apiBase+"/weather?"+s.locationQuery(loc).Encode(), &src); err != nil {
		return fmt.Errorf("fetch current conditions: %w", err)
	}

	cur := s.buildCurrent(&src)
	s.mu.Lock()
	s.current = &cur
	s.mu.Unlock()
	s.persist(ctx, currentKey, cur)

	log.Printf("[INFO] current conditions updated: %s, %.0f", cur.Label, cur.Temp)
	return nil
}

// UpdateForecast fetches the 5-day forecast and publishes the aggregated
// daily snapshot.
func (s *Service) UpdateForecast(ctx context.Context) error {
	loc, err := s.coords(ctx)
	if err != nil {
		return err
	}

	q := s.locationQuery(loc)
	q.Set("cnt", "40") // 5 days of 3-hour slots

	var src apiForecast
	if err := s.getJSON(ctx, s.apiBase+"/forecast?"+q.Encode(), &src); err != nil {
		return fmt.Errorf("fetch forecast: %w", err)
	}

	fc := Forecast{
		City:      src.City.Name,
		Days:      buildDaily(src.List, src.City.Timezone),
		FetchedAt: time.Now(),
	}
	s.mu.Lock()
	s.forecast = &fc
	s.mu.Unlock()
	s.persist(ctx, forecastKey, fc)

	log.Printf("[INFO] forecast updated, %d days", len(fc.Days))
	return nil
}

// coords resolves the configured zip to lat/lon, cached indefinitely. The
// geocoding endpoint is rate limited so the lookup happens once per location.
func (s *Service) coords(ctx context.Context) (Coord, error) {
	s.mu.RLock()
	if s.loc != nil {
		c := *s.loc
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	if payload, _, found, err := s.cache.Get(ctx, coordsKey); err == nil && found {
		var c Coord
		if uerr := json.Unmarshal(payload, &c); uerr == nil {
			s.mu.Lock()
			s.loc = &c
			s.mu.Unlock()
			log.Printf("[DEBUG] using cached coordinates for %s", s.cfg.Zip)
			return c, nil
		}
	}

	q := url.Values{}
	q.Set("zip", s.cfg.Zip+","+s.cfg.Country)
	q.Set("appid", s.cfg.APIKey)

	var c Coord
	if err := s.getJSON(ctx, s.geoBase+"/zip?"+q.Encode(), &c); err != nil {
		return Coord{}, fmt.Errorf("resolve location for %s: %w", s.cfg.Zip, err)
	}

	if payload, err := json.Marshal(c); err == nil {
		if serr := s.cache.Set(ctx, coordsKey, payload, 0); serr != nil {
			log.Printf("[WARN] save coordinates: %v", serr)
		}
	}

	s.mu.Lock()
	s.loc = &c
	s.mu.Unlock()
	log.Printf("[INFO] resolved %s to %.4f,%.4f", s.cfg.Zip, c.Lat, c.Lon)
	return c, nil
}

func (s *Service) locationQuery(loc Coord) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("units", s.cfg.Units)
	q.Set("lang", "en")
	q.Set("appid", s.cfg.APIKey)
	return q
}

// getJSON fetches and decodes a JSON endpoint. Errors never carry the URL,
// it embeds the api key.
func (s *Service) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (s *Service) persist(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] marshal %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, snapshotTTL); err != nil {
		log.Printf("[WARN] save %s: %v", key, err)
	}
}

func (s *Service) buildCurrent(src *apiCurrent) Current {
	daytime := src.Dt >= src.Sys.Sunrise && src.Dt <= src.Sys.Sunset
	cur := Current{
		City:      src.Name,
		Temp:      src.Main.Temp,
		FeelsLike: src.Main.FeelsLike,
		Humidity:  src.Main.Humidity,
		WindSpeed: src.Wind.Speed,
		Daytime:   daytime,
		Units:     s.cfg.Units,
		FetchedAt: time.Now(),
	}
	if len(src.Weather) == 0 {
		return cur
	}

	w := src.Weather[0]
	cur.Label = w.Description
	cur.Icon = dayIcon(w.Icon, daytime)
	if cond, ok := ConditionFor(w.ID); ok {
		cur.Label = cond.Desc
		cur.Meteocon = cond.MeteoconFile(daytime)
		if w.Icon == "" {
			cur.Icon = dayIcon(cond.Icon, daytime)
		}
	}
	return cur
}

// buildDaily folds chronological 3-hour slots into calendar days in the
// city's timezone. Numeric fields are averaged except the min/max bounds,
// the day's condition is the most frequent one with first seen winning ties.
func buildDaily(items []apiForecastItem, tzOffset int) []ForecastDay {
	loc := time.FixedZone("", tzOffset)

	type dayAgg struct {
		date             time.Time
		n                int
		temp, hum, rain  float64
		tempMin, tempMax float64
		condCount        map[int]int
		condOrder        []int
		condSeen         map[int]apiWeather
	}

	var days []*dayAgg
	var cur *dayAgg
	for _, it := range items {
		d := time.Unix(it.Dt, 0).In(loc)
		date := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		if cur == nil || !cur.date.Equal(date) {
			cur = &dayAgg{
				date:      date,
				tempMin:   it.Main.TempMin,
				tempMax:   it.Main.TempMax,
				condCount: map[int]int{},
				condSeen:  map[int]apiWeather{},
			}
			days = append(days, cur)
		}
		cur.n++
		cur.temp += it.Main.Temp
		cur.hum += it.Main.Humidity
		cur.rain += it.Rain["3h"]
		cur.tempMin = min(cur.tempMin, it.Main.TempMin)
		cur.tempMax = max(cur.tempMax, it.Main.TempMax)
		if len(it.Weather) > 0 {
			w := it.Weather[0]
			if _, seen := cur.condSeen[w.ID]; !seen {
				cur.condSeen[w.ID] = w
				cur.condOrder = append(cur.condOrder, w.ID)
			}
			cur.condCount[w.ID]++
		}
	}

	out := make([]ForecastDay, 0, len(days))
	for _, d := range days {
		fd := ForecastDay{
			Date:     d.date,
			DayShort: d.date.Format("Mon"),
			DayFull:  d.date.Format("Monday"),
			Temp:     d.temp / float64(d.n),
			TempMin:  d.tempMin,
			TempMax:  d.tempMax,
			Humidity: d.hum / float64(d.n),
			Rain:     d.rain / float64(d.n),
		}

		best, bestCount := 0, 0
		for _, id := range d.condOrder {
			if c := d.condCount[id]; c > bestCount {
				best, bestCount = id, c
			}
		}
		if bestCount > 0 {
			w := d.condSeen[best]
			fd.Label = w.Description
			fd.Icon = w.Icon
			if cond, ok := ConditionFor(best); ok {
				fd.Label = cond.Desc
				fd.Meteocon = cond.MeteoconFile(true) // outlook always shows day icons
				if fd.Icon == "" {
					fd.Icon = cond.Icon
				}
			}
		}
		out = append(out, fd)
	}
	return out
}

// wire shapes of the OpenWeatherMap answers, only the consumed fields

type apiWeather struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type apiMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type apiCurrent struct {
	Coord   Coord        `json:"coord"`
	Weather []apiWeather `json:"weather"`
	Main    apiMain      `json:"main"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

type apiForecastItem struct {
	Dt      int64              `json:"dt"`
	Main    apiMain            `json:"main"`
	Weather []apiWeather       `json:"weather"`
	Rain    map[string]float64 `json:"rain"`
}

type apiForecast struct {
	List []apiForecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}
