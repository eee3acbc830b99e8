package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func testClient(baseURL string) *Client {
	return NewClient(
		testAPIKey,
		baseURL,
		5*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.71", r.URL.Query().Get("lat"))
		assert.Equal(t, "-74.01", r.URL.Query().Get("lon"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"main":{"temp":21.5},"weather":[{"description":"clear sky"}]}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	summary, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 40.71, Lon: -74.01})
	require.NoError(t, err)

	assert.Equal(t, "Clear sky", summary.Description)
	assert.Equal(t, "21.5", summary.Temperature)
}

func TestClient_Fetch_EmptyForecastList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 51.51, Lon: -0.13})
	require.ErrorIs(t, err, domain.ErrNoForecastData)
}

func TestClient_Fetch_NoDescriptionList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"main":{"temp":12.0},"weather":[]}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 51.51, Lon: -0.13})
	require.ErrorIs(t, err, domain.ErrNoDescription)
}

func TestClient_Fetch_MissingTemperatureTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"main":{},"weather":[{"description":"mist"}]}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	summary, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 51.51, Lon: -0.13})
	require.NoError(t, err, "a partial record with no temperature is still a valid summary")

	assert.Equal(t, "Mist", summary.Description)
	assert.Equal(t, domain.TempUnavailable, summary.Temperature)
}

func TestClient_Fetch_MissingDescriptionField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"main":{"temp":3.25},"weather":[{}]}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	summary, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 51.51, Lon: -0.13})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", summary.Description)
}

func TestClient_Fetch_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 51.51, Lon: -0.13})
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestClient_Fetch_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for i := 0; i < 10; i++ {
		_, err := c.Fetch(context.Background(), domain.Coordinate{Lat: 1, Lon: 1})
		require.ErrorIs(t, err, domain.ErrProviderUnavailable,
			"an open circuit still surfaces as provider-unavailable")
	}
}
