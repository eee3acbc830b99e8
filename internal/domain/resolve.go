package domain

import (
	"context"
	"log/slog"
	"strings"
)

// ResolveLocation verifies free-text input against the geocoder and returns
// the rounded coordinate. A provider error and an empty result both come
// back as not found: the upstream cannot tell geocoder-down from
// geocoder-empty, so both degrade the same way and the failure is only
// logged. No retries happen here; retrying is a conversational decision.
func ResolveLocation(ctx context.Context, text string, geocoder Geocoder, logger *slog.Logger) (Coordinate, bool) {
	query := strings.TrimSpace(text)
	if query == "" {
		return Coordinate{}, false
	}

	result, err := geocoder.Geocode(ctx, query)
	if err != nil {
		logger.Error("error finding location", "location", query, "error", err)
		return Coordinate{}, false
	}
	if !result.Found {
		logger.Error("location not found", "location", query)
		return Coordinate{}, false
	}

	logger.Info("location resolved",
		"location", query,
		"lat", result.Coord.Lat,
		"lon", result.Coord.Lon,
	)
	return result.Coord, true
}
