package openweather

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

	"github.com/sony/gobreaker"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/observability"
)

// Client implements domain.WeatherProvider using the OpenWeatherMap 5-day
// forecast API. A circuit breaker keeps a flapping provider from stacking
// up slow calls across chats.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap forecast client.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		circuit:    cb,
		metrics:    metrics,
		logger:     logger,
	}
}

// Fetch returns the summary for the first entry of the short-range
// forecast at coord, metric units. The coordinate is already rounded to
// 2 decimals, which is the precision sent to the provider.
func (c *Client) Fetch(ctx context.Context, coord domain.Coordinate) (domain.Summary, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', 2, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lon, 'f', 2, 64))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	start := time.Now()
	body, err := c.doRequest(ctx, c.baseURL+"?"+values.Encode())
	c.metrics.WeatherDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		c.logger.Error("weather API error", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return domain.Summary{}, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	summary, err := parseForecast(body)
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.Summary{}, err
	}

	c.metrics.WeatherRequests.WithLabelValues("success").Inc()
	return summary, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// parseForecast extracts the first forecast entry. Missing entries and a
// missing description list are distinct failures the user gets told about;
// a missing temperature is tolerated and rendered as "N/A".
func parseForecast(body []byte) (domain.Summary, error) {
	var payload struct {
		List []struct {
			Main struct {
				Temp *float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Summary{}, fmt.Errorf("decode forecast: %w", err)
	}

	if len(payload.List) == 0 {
		return domain.Summary{}, domain.ErrNoForecastData
	}
	first := payload.List[0]
	if len(first.Weather) == 0 {
		return domain.Summary{}, domain.ErrNoDescription
	}

	description := first.Weather[0].Description
	if description == "" {
		description = "Unknown"
	}

	temp := domain.TempUnavailable
	if first.Main.Temp != nil {
		temp = strconv.FormatFloat(*first.Main.Temp, 'f', -1, 64)
	}

	return domain.Summary{
		Description: domain.Capitalize(description),
		Temperature: temp,
	}, nil
}
