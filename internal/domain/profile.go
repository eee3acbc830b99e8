package domain

import (
	"slices"
	"time"
)

// Preference values accepted by profile validation.
const (
	FrequencyDaily = "daily"

	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

// Preferences holds the per-user notification settings.
type Preferences struct {
	AlertFrequency  string `json:"alert_frequency"`
	TemperatureUnit string `json:"temperature_unit"`
}

// UserProfile is the durable record kept for each chat: saved locations in
// insertion order (no duplicates, case-sensitive), preferences, and the
// alert opt-in flag.
type UserProfile struct {
	Locations     []string    `json:"locations"`
	Preferences   Preferences `json:"preferences"`
	AlertsEnabled bool        `json:"alerts_enabled"`
	CreatedAt     time.Time   `json:"created_at,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at,omitempty"`
}

// NewProfile returns a profile populated with defaults: no locations,
// daily celsius preferences, alerts enabled.
func NewProfile() UserProfile {
	now := clock.Now().UTC()
	return UserProfile{
		Locations: []string{},
		Preferences: Preferences{
			AlertFrequency:  FrequencyDaily,
			TemperatureUnit: UnitCelsius,
		},
		AlertsEnabled: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Valid reports whether a stored profile has the expected shape. Records
// that fail this check are treated as absent and recreated with defaults,
// never left partially structured.
func (p UserProfile) Valid() bool {
	if p.Locations == nil {
		return false
	}
	if p.Preferences.AlertFrequency == "" {
		return false
	}
	switch p.Preferences.TemperatureUnit {
	case UnitCelsius, UnitFahrenheit:
		return true
	default:
		return false
	}
}

// HasLocation reports whether loc is already saved (exact match).
func (p UserProfile) HasLocation(loc string) bool {
	return slices.Contains(p.Locations, loc)
}

// AddLocation appends loc and bumps the update timestamp. The caller is
// expected to have checked HasLocation first.
func (p *UserProfile) AddLocation(loc string) {
	p.Locations = append(p.Locations, loc)
	p.UpdatedAt = clock.Now().UTC()
}
