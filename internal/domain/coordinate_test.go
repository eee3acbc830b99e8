package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     Coordinate
	}{
		{"new york", 40.712776, -74.005974, Coordinate{40.71, -74.01}},
		{"already rounded", 51.5, -0.13, Coordinate{51.5, -0.13}},
		{"rounds half up", 10.005, 10.005, Coordinate{10.01, 10.01}},
		{"negative", -33.868820, 151.209290, Coordinate{-33.87, 151.21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCoordinate(tt.lat, tt.lon))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Clear sky", Capitalize("clear sky"))
	assert.Equal(t, "Unknown", Capitalize("Unknown"))
	assert.Equal(t, "", Capitalize(""))
}
