package domain

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"
)

// TempUnavailable is the placeholder used when the provider omits the
// temperature from an otherwise usable forecast entry. A summary carrying
// it is still valid, not a failure.
const TempUnavailable = "N/A"

// Weather fetch failures. The three cases are distinguished because each
// maps to a different user-facing message.
var (
	// ErrProviderUnavailable means the weather provider was unreachable or
	// answered with a non-success status.
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// ErrNoForecastData means the provider response carried no forecast
	// entries at all.
	ErrNoForecastData = errors.New("no forecast entries in response")

	// ErrNoDescription means the first forecast entry carried no weather
	// description list.
	ErrNoDescription = errors.New("no weather description in forecast entry")
)

// Summary is a single human-readable weather report built from the first
// entry of a short-range forecast.
type Summary struct {
	Description string // capitalized, e.g. "Clear sky"
	Temperature string // formatted degrees Celsius, or TempUnavailable
}

// WeatherProvider fetches a short-range forecast summary for a coordinate.
type WeatherProvider interface {
	Fetch(ctx context.Context, coord Coordinate) (Summary, error)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
