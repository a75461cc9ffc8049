package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signboard/pkg/config"
	"signboard/pkg/weather/mocks"
)

// dt 1700000000 sits between sunrise and sunset, daytime conditions
const currentJSON = `{
  "coord": {"lat": 41.915, "lon": -71.675},
  "weather": [{"id": 501, "main": "Rain", "description": "moderate rain", "icon": "10d"}],
  "main": {"temp": 62.4, "feels_like": 61.0, "temp_min": 58.1, "temp_max": 65.3, "pressure": 1012, "humidity": 78},
  "wind": {"speed": 8.5, "deg": 220},
  "dt": 1700000000,
  "sys": {"sunrise": 1699990000, "sunset": 1700020000},
  "name": "Chepachet"
}`

const coordsJSON = `{"zip": "02814", "name": "Chepachet", "lat": 41.915, "lon": -71.675, "country": "US"}`

func testWeatherConfig() config.WeatherConfig {
	return config.WeatherConfig{
		Enabled: true,
		APIKey:  "test-key",
		Zip:     "02814",
		Country: "US",
		Units:   "imperial",
	}
}

func noopCache() *mocks.CacheMock {
	return &mocks.CacheMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
			return nil, time.Time{}, false, nil
		},
		SetFunc: func(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
			return nil
		},
	}
}

func TestService_UpdateCurrent(t *testing.T) {
	t.Run("daytime conditions", func(t *testing.T) {
		var geoCalls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/zip":
				atomic.AddInt32(&geoCalls, 1)
				assert.Equal(t, "02814,US", r.URL.Query().Get("zip"))
				assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
				w.Write([]byte(coordsJSON))
			case "/weather":
				assert.Equal(t, "41.915", r.URL.Query().Get("lat"))
				assert.Equal(t, "-71.675", r.URL.Query().Get("lon"))
				assert.Equal(t, "imperial", r.URL.Query().Get("units"))
				assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
				w.Write([]byte(currentJSON))
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		cache := noopCache()
		svc := NewService(testWeatherConfig(), cache)
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		require.NoError(t, svc.UpdateCurrent(context.Background()))

		cur, fc := svc.Latest()
		require.NotNil(t, cur)
		assert.Nil(t, fc)
		assert.Equal(t, "Chepachet", cur.City)
		assert.InDelta(t, 62.4, cur.Temp, 0.001)
		assert.InDelta(t, 61.0, cur.FeelsLike, 0.001)
		assert.InDelta(t, 78.0, cur.Humidity, 0.001)
		assert.InDelta(t, 8.5, cur.WindSpeed, 0.001)
		assert.Equal(t, "moderate rain", cur.Label)
		assert.Equal(t, "10d", cur.Icon)
		assert.Equal(t, "partly-cloudy-day-rain.svg", cur.Meteocon)
		assert.True(t, cur.Daytime)
		assert.Equal(t, "imperial", cur.Units)
		assert.WithinDuration(t, time.Now(), cur.FetchedAt, 5*time.Second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&geoCalls))

		// resolved location pinned, snapshot stored with a ttl
		setCalls := cache.SetCalls()
		require.Len(t, setCalls, 2)
		assert.Equal(t, "weather:coords", setCalls[0].Key)
		assert.Equal(t, time.Duration(0), setCalls[0].Ttl)
		assert.Equal(t, "weather:current", setCalls[1].Key)
		assert.Equal(t, snapshotTTL, setCalls[1].Ttl)
	})

	t.Run("night swaps day icon", func(t *testing.T) {
		night := `{
		  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
		  "main": {"temp": 48.0, "feels_like": 45.2, "humidity": 60},
		  "wind": {"speed": 3.0},
		  "dt": 1700030000,
		  "sys": {"sunrise": 1699990000, "sunset": 1700020000},
		  "name": "Chepachet"
		}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/zip" {
				w.Write([]byte(coordsJSON))
				return
			}
			w.Write([]byte(night))
		}))
		defer srv.Close()

		svc := NewService(testWeatherConfig(), noopCache())
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		require.NoError(t, svc.UpdateCurrent(context.Background()))

		cur, _ := svc.Latest()
		require.NotNil(t, cur)
		assert.False(t, cur.Daytime)
		assert.Equal(t, "01n", cur.Icon)
		assert.Equal(t, "clear-night.svg", cur.Meteocon)
		assert.Equal(t, "clear sky", cur.Label)
	})

	t.Run("unknown condition code keeps api fields", func(t *testing.T) {
		odd := `{
		  "weather": [{"id": 999, "main": "Odd", "description": "falling frogs", "icon": "07d"}],
		  "main": {"temp": 50.0},
		  "dt": 1700000000,
		  "sys": {"sunrise": 1699990000, "sunset": 1700020000},
		  "name": "Chepachet"
		}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/zip" {
				w.Write([]byte(coordsJSON))
				return
			}
			w.Write([]byte(odd))
		}))
		defer srv.Close()

		svc := NewService(testWeatherConfig(), noopCache())
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		require.NoError(t, svc.UpdateCurrent(context.Background()))

		cur, _ := svc.Latest()
		require.NotNil(t, cur)
		assert.Equal(t, "falling frogs", cur.Label)
		assert.Equal(t, "07d", cur.Icon)
		assert.Empty(t, cur.Meteocon)
	})

	t.Run("server error keeps previous snapshot", func(t *testing.T) {
		var fail int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/zip" {
				w.Write([]byte(coordsJSON))
				return
			}
			if atomic.LoadInt32(&fail) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(currentJSON))
		}))
		defer srv.Close()

		svc := NewService(testWeatherConfig(), noopCache())
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		require.NoError(t, svc.UpdateCurrent(context.Background()))
		before, _ := svc.Latest()
		require.NotNil(t, before)

		atomic.StoreInt32(&fail, 1)
		err := svc.UpdateCurrent(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")

		after, _ := svc.Latest()
		assert.Equal(t, before, after, "failed poll must not clear the snapshot")
	})

	t.Run("geocoding failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := NewService(testWeatherConfig(), noopCache())
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		err := svc.UpdateCurrent(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolve location for 02814")
	})

	t.Run("cached coordinates skip geocoding", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/zip" {
				t.Error("geocoding endpoint must not be called")
				return
			}
			w.Write([]byte(currentJSON))
		}))
		defer srv.Close()

		cache := noopCache()
		cache.GetFunc = func(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
			if key == coordsKey {
				return []byte(`{"lat": 41.915, "lon": -71.675}`), time.Now(), true, nil
			}
			return nil, time.Time{}, false, nil
		}

		svc := NewService(testWeatherConfig(), cache)
		svc.apiBase = srv.URL
		svc.geoBase = srv.URL

		require.NoError(t, svc.UpdateCurrent(context.Background()))
		cur, _ := svc.Latest()
		require.NotNil(t, cur)
		assert.Equal(t, "Chepachet", cur.City)
	})
}

func TestService_UpdateForecast(t *testing.T) {
	// three days starting Wed 2024-05-01, city timezone UTC
	forecastJSON := `{
	  "list": [
	    {"dt": 1714554000, "main": {"temp": 50, "temp_min": 48, "temp_max": 52, "humidity": 80},
	     "weather": [{"id": 500, "description": "light rain", "icon": "10d"}], "rain": {"3h": 1.2}},
	    {"dt": 1714564800, "main": {"temp": 54, "temp_min": 50, "temp_max": 56, "humidity": 70},
	     "weather": [{"id": 500, "description": "light rain", "icon": "10d"}], "rain": {"3h": 0.4}},
	    {"dt": 1714575600, "main": {"temp": 56, "temp_min": 52, "temp_max": 58, "humidity": 60},
	     "weather": [{"id": 800, "description": "clear sky", "icon": "01d"}]},
	    {"dt": 1714651200, "main": {"temp": 60, "temp_min": 55, "temp_max": 62, "humidity": 50},
	     "weather": [{"id": 800, "description": "clear sky", "icon": "01d"}]},
	    {"dt": 1714662000, "main": {"temp": 64, "temp_min": 58, "temp_max": 66, "humidity": 40},
	     "weather": [{"id": 801, "description": "few clouds", "icon": "02d"}]},
	    {"dt": 1714672800, "main": {"temp": 62, "temp_min": 57, "temp_max": 65, "humidity": 45},
	     "weather": [{"id": 800, "description": "clear sky", "icon": "01d"}]},
	    {"dt": 1714726800, "main": {"temp": 40, "temp_min": 38, "temp_max": 42, "humidity": 90},
	     "weather": [{"id": 600, "description": "light snow", "icon": "13d"}]},
	    {"dt": 1714737600, "main": {"temp": 44, "temp_min": 40, "temp_max": 46, "humidity": 85},
	     "weather": [{"id": 801, "description": "few clouds", "icon": "02d"}]}
	  ],
	  "city": {"name": "Chepachet", "timezone": 0, "sunrise": 1714555000, "sunset": 1714605000}
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/zip":
			w.Write([]byte(coordsJSON))
		case "/forecast":
			assert.Equal(t, "40", r.URL.Query().Get("cnt"))
			assert.Equal(t, "imperial", r.URL.Query().Get("units"))
			w.Write([]byte(forecastJSON))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	cache := noopCache()
	svc := NewService(testWeatherConfig(), cache)
	svc.apiBase = srv.URL
	svc.geoBase = srv.URL

	require.NoError(t, svc.UpdateForecast(context.Background()))

	_, fc := svc.Latest()
	require.NotNil(t, fc)
	assert.Equal(t, "Chepachet", fc.City)
	assert.WithinDuration(t, time.Now(), fc.FetchedAt, 5*time.Second)
	require.Len(t, fc.Days, 3)

	wed := fc.Days[0]
	assert.Equal(t, "Wed", wed.DayShort)
	assert.Equal(t, "Wednesday", wed.DayFull)
	assert.InDelta(t, 53.333, wed.Temp, 0.01)
	assert.InDelta(t, 48.0, wed.TempMin, 0.001)
	assert.InDelta(t, 58.0, wed.TempMax, 0.001)
	assert.InDelta(t, 70.0, wed.Humidity, 0.01)
	assert.InDelta(t, 0.533, wed.Rain, 0.01)
	assert.Equal(t, "light rain", wed.Label, "two rain slots outvote one clear slot")
	assert.Equal(t, "10d", wed.Icon)
	assert.Equal(t, "partly-cloudy-day-rain.svg", wed.Meteocon)

	thu := fc.Days[1]
	assert.Equal(t, "Thu", thu.DayShort)
	assert.InDelta(t, 62.0, thu.Temp, 0.01)
	assert.InDelta(t, 55.0, thu.TempMin, 0.001)
	assert.InDelta(t, 66.0, thu.TempMax, 0.001)
	assert.Zero(t, thu.Rain)
	assert.Equal(t, "clear sky", thu.Label)
	assert.Equal(t, "clear-day.svg", thu.Meteocon)

	fri := fc.Days[2]
	assert.Equal(t, "Fri", fri.DayShort)
	assert.Equal(t, "light snow", fri.Label, "tied conditions resolve to the first seen")
	assert.Equal(t, "partly-cloudy-day-snow.svg", fri.Meteocon)

	// forecast snapshot persisted alongside the pinned coordinates
	keys := make([]string, 0, len(cache.SetCalls()))
	for _, c := range cache.SetCalls() {
		keys = append(keys, c.Key)
	}
	assert.Contains(t, keys, "weather:forecast")
}

func TestBuildDaily_TimezoneBoundaries(t *testing.T) {
	// 01:00 and 03:00 UTC on May 2nd, still May 1st in a UTC-3 city
	items := []apiForecastItem{
		{Dt: 1714611600, Main: apiMain{Temp: 50}, Weather: []apiWeather{{ID: 800, Description: "clear sky", Icon: "01d"}}},
		{Dt: 1714618800, Main: apiMain{Temp: 52}, Weather: []apiWeather{{ID: 800, Description: "clear sky", Icon: "01d"}}},
	}

	utc := buildDaily(items, 0)
	require.Len(t, utc, 1)
	assert.Equal(t, "Thu", utc[0].DayShort)

	shifted := buildDaily(items, -3*3600)
	require.Len(t, shifted, 2)
	assert.Equal(t, "Wed", shifted[0].DayShort)
	assert.Equal(t, "Thu", shifted[1].DayShort)
}

func TestService_Load(t *testing.T) {
	t.Run("warm start from cache", func(t *testing.T) {
		cur := Current{City: "Chepachet", Temp: 55.5, Label: "clear sky", FetchedAt: time.Now().Add(-10 * time.Minute)}
		fc := Forecast{City: "Chepachet", Days: []ForecastDay{{DayShort: "Wed"}}, FetchedAt: time.Now().Add(-time.Hour)}
		curPayload, err := json.Marshal(cur)
		require.NoError(t, err)
		fcPayload, err := json.Marshal(fc)
		require.NoError(t, err)

		cache := noopCache()
		cache.GetFunc = func(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
			switch key {
			case currentKey:
				return curPayload, time.Now(), true, nil
			case forecastKey:
				return fcPayload, time.Now(), true, nil
			}
			return nil, time.Time{}, false, nil
		}

		svc := NewService(testWeatherConfig(), cache)
		svc.Load(context.Background())

		gotCur, gotFc := svc.Latest()
		require.NotNil(t, gotCur)
		require.NotNil(t, gotFc)
		assert.Equal(t, "Chepachet", gotCur.City)
		assert.InDelta(t, 55.5, gotCur.Temp, 0.001)
		assert.Len(t, gotFc.Days, 1)
	})

	t.Run("empty cache leaves snapshots nil", func(t *testing.T) {
		svc := NewService(testWeatherConfig(), noopCache())
		svc.Load(context.Background())

		cur, fc := svc.Latest()
		assert.Nil(t, cur)
		assert.Nil(t, fc)
	})

	t.Run("corrupt payload ignored", func(t *testing.T) {
		cache := noopCache()
		cache.GetFunc = func(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
			return []byte("not json"), time.Now(), true, nil
		}
		svc := NewService(testWeatherConfig(), cache)
		svc.Load(context.Background())

		cur, fc := svc.Latest()
		assert.Nil(t, cur)
		assert.Nil(t, fc)
	})
}
