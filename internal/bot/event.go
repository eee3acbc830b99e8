// Package bot holds the conversational core: the inbound event model, the
// per-chat session state machine, and the dispatcher that drives the
// geocoder, weather provider, and profile store.
package bot

// EventType enumerates the inbound interactions the dispatcher understands.
// Callback token strings from the transport are decoded into these exactly
// once, at the transport boundary.
type EventType int

const (
	EventStartCommand EventType = iota
	EventStartYes
	EventStartNo
	EventGetWeather
	EventSetLocation
	EventWeatherAlerts
	EventTryAgainYes
	EventTryAgainNo
	EventFreeText
)

func (t EventType) String() string {
	switch t {
	case EventStartCommand:
		return "start_command"
	case EventStartYes:
		return "start_yes"
	case EventStartNo:
		return "start_no"
	case EventGetWeather:
		return "get_weather"
	case EventSetLocation:
		return "set_location"
	case EventWeatherAlerts:
		return "weather_alerts"
	case EventTryAgainYes:
		return "try_again_yes"
	case EventTryAgainNo:
		return "try_again_no"
	case EventFreeText:
		return "free_text"
	default:
		return "unknown"
	}
}

// Event is a single inbound interaction tagged with the chat it came from.
// Text is set only for EventFreeText.
type Event struct {
	Type   EventType
	ChatID int64
	Text   string
}
