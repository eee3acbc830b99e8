package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	BotToken     string
	WeatherToken string

	UserDataFile    string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	PollTimeout     time.Duration

	GeocoderBaseURL   string
	GeocoderTimeout   time.Duration
	GeocoderCacheSize int

	WeatherBaseURL string
	WeatherTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present, matching how the bot has always been deployed.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	pollTimeout, err := parseDuration("POLL_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := parseDuration("GEOCODER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		WeatherToken: os.Getenv("WEATHER_TOKEN"),

		UserDataFile:    envOrDefault("USER_DATA_FILE", "user_data.json"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		PollTimeout:     pollTimeout,

		GeocoderBaseURL:   envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderTimeout:   geocoderTimeout,
		GeocoderCacheSize: parseGeocoderCacheSize(),

		WeatherBaseURL: envOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/forecast"),
		WeatherTimeout: weatherTimeout,
	}

	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	if cfg.WeatherToken == "" {
		return nil, errors.New("WEATHER_TOKEN is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseGeocoderCacheSize() int {
	if s := os.Getenv("GEOCODER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
