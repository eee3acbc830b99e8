package domain

import "math"

// Coordinate is a latitude/longitude pair in decimal degrees, rounded to
// 2 decimal places.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate rounds raw provider coordinates to 2 decimal places.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: round2(lat), Lon: round2(lon)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
