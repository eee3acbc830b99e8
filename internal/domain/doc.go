// Package domain models the weather assistant's core concepts: user
// profiles with saved locations, coordinates, and the ports to the
// geocoding and weather providers.
//
// # Profile persistence conventions
//
// Profiles are stored as a single JSON object keyed by the string form of
// the Telegram chat ID. A stored record that fails structural validation
// is discarded and recreated with defaults rather than repaired; the
// store layer performs that parse-or-default step at the deserialization
// boundary (see [UserProfile.Valid]).
//
// # Coordinates
//
// Latitude and longitude are always rounded to 2 decimal places before
// use. This keeps cache keys and log lines canonical and avoids sending
// over-precise queries to the weather provider.
package domain
