package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/observability"
)

const userAgent = "telegram-weather-bot"

// Client implements domain.Geocoder using the OpenStreetMap Nominatim
// search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Geocode resolves a free-text place query to coordinates. An empty result
// set is not an error: it comes back with Found unset.
func (c *Client) Geocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("decode response: %w", err)
	}

	if len(places) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return domain.GeocodingResult{}, nil
	}

	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("parse latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("parse longitude %q: %w", p.Lon, err)
	}

	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return domain.GeocodingResult{
		Coord:       domain.NewCoordinate(lat, lon),
		DisplayName: p.DisplayName,
		Found:       true,
	}, nil
}

// Nominatim API response types. Coordinates arrive as strings.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
