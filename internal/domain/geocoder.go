package domain

import "context"

// GeocodingResult is the provider's answer for a free-text place query.
// Found is false when the provider had no match for the query.
type GeocodingResult struct {
	Coord       Coordinate
	DisplayName string
	Found       bool
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (GeocodingResult, error)
}
