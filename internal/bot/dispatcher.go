package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/observability"
	"github.com/fabianqube/Telegram-Weather-Bot/internal/store"
)

// Dispatcher routes inbound events through the conversation state machine
// and drives the geocoder, weather provider, and profile store. One event
// is handled to completion per call; events for different chats may run
// concurrently on independent goroutines.
type Dispatcher struct {
	sessions SessionStore
	geocoder domain.Geocoder
	weather  domain.WeatherProvider
	profiles store.ProfileStore
	replier  Replier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewDispatcher wires the dispatcher to its collaborators.
func NewDispatcher(
	sessions SessionStore,
	geocoder domain.Geocoder,
	weather domain.WeatherProvider,
	profiles store.ProfileStore,
	replier Replier,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		geocoder: geocoder,
		weather:  weather,
		profiles: profiles,
		replier:  replier,
		logger:   logger,
		metrics:  metrics,
	}
}

// HandleEvent processes one inbound event. It never returns an error:
// every failure ends in a message to the user, and a panicking handler is
// confined to the event that caused it, with the session cleared so the
// chat cannot wedge in an awaiting state.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev Event) {
	defer func() {
		d.metrics.ActiveSessions.Set(float64(d.sessions.Active()))
		if r := recover(); r != nil {
			d.metrics.HandlerPanics.Inc()
			d.logger.Error("event handler panicked", "chat_id", ev.ChatID, "event", ev.Type.String(), "panic", r)
			d.sessions.Clear(ev.ChatID)
			d.sendText(ctx, ev.ChatID, msgUnexpected)
		}
	}()

	d.metrics.EventsHandled.WithLabelValues(ev.Type.String()).Inc()

	switch ev.Type {
	case EventStartCommand:
		d.sendButtons(ctx, ev.ChatID, msgWelcome, startButtons())
	case EventStartYes:
		d.sendText(ctx, ev.ChatID, msgStartYes)
		d.sendButtons(ctx, ev.ChatID, msgMenuPrompt, menuButtons())
	case EventStartNo:
		d.sendText(ctx, ev.ChatID, msgStartNo)
	case EventGetWeather:
		d.sessions.Set(ev.ChatID, StepAwaitingWeatherLocation)
		d.sendText(ctx, ev.ChatID, msgAskWeatherLocation)
	case EventSetLocation, EventTryAgainYes:
		d.sessions.Set(ev.ChatID, StepAwaitingSaveLocation)
		d.sendText(ctx, ev.ChatID, msgAskSaveLocation)
	case EventWeatherAlerts:
		d.sendText(ctx, ev.ChatID, msgAlertsStub)
	case EventTryAgainNo:
		d.sessions.Clear(ev.ChatID)
		d.sendText(ctx, ev.ChatID, msgNotSaved)
	case EventFreeText:
		d.handleFreeText(ctx, ev)
	default:
		d.logger.Warn("unknown event type", "chat_id", ev.ChatID, "event", int(ev.Type))
	}
}

// handleFreeText consumes the awaited input. The session is cleared before
// the pipeline runs so the text is consumed exactly once regardless of
// outcome; only an explicit try-again re-enters the awaiting state.
func (d *Dispatcher) handleFreeText(ctx context.Context, ev Event) {
	switch d.sessions.Step(ev.ChatID) {
	case StepAwaitingWeatherLocation:
		d.sessions.Clear(ev.ChatID)
		d.lookupWeather(ctx, ev.ChatID, ev.Text)
	case StepAwaitingSaveLocation:
		d.sessions.Clear(ev.ChatID)
		d.saveLocation(ctx, ev.ChatID, ev.Text)
	default:
		d.sendText(ctx, ev.ChatID, msgUseMenu)
	}
}

// lookupWeather runs resolve-then-fetch. An unresolvable location sends
// nothing: this path deliberately stays silent on resolver failure, unlike
// the save path with its retry dialog.
func (d *Dispatcher) lookupWeather(ctx context.Context, chatID int64, text string) {
	coord, ok := domain.ResolveLocation(ctx, text, d.geocoder, d.logger)
	if !ok {
		return
	}

	summary, err := d.weather.Fetch(ctx, coord)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoForecastData):
			d.sendText(ctx, chatID, msgNoWeatherData)
		case errors.Is(err, domain.ErrNoDescription):
			d.sendText(ctx, chatID, msgNoDescription)
		default:
			d.logger.Error("weather fetch failed", "chat_id", chatID, "error", err)
			d.sendText(ctx, chatID, msgWeatherUnavailable)
		}
		return
	}

	d.sendText(ctx, chatID, msgWeatherIntro)
	if err := d.replier.SendMarkdown(ctx, chatID, weatherMessage(summary)); err != nil {
		d.logger.Error("send message failed", "chat_id", chatID, "error", err)
	}
}

// saveLocation verifies the location first and only then touches the
// profile store. On resolver failure the store stays untouched and the
// user gets the retry dialog instead of a silent drop.
func (d *Dispatcher) saveLocation(ctx context.Context, chatID int64, text string) {
	location := strings.TrimSpace(text)

	if _, ok := domain.ResolveLocation(ctx, location, d.geocoder, d.logger); !ok {
		d.logger.Warn("invalid location attempted", "chat_id", chatID, "location", location)
		d.sendButtons(ctx, chatID, msgTryAgain, tryAgainButtons())
		return
	}

	userID := strconv.FormatInt(chatID, 10)
	outcome, profile, err := d.profiles.UpsertLocation(ctx, userID, location)
	if err != nil {
		d.metrics.ProfileUpserts.WithLabelValues("error").Inc()
		d.logger.Error("error saving location", "chat_id", chatID, "location", location, "error", err)
		d.sendText(ctx, chatID, msgSaveError)
		return
	}
	d.metrics.ProfileUpserts.WithLabelValues(outcome.String()).Inc()

	if outcome == store.OutcomeDuplicate {
		d.sendText(ctx, chatID, duplicateMessage(location))
		return
	}
	d.sendText(ctx, chatID, savedMessage(profile.Locations))
}

func (d *Dispatcher) sendText(ctx context.Context, chatID int64, text string) {
	if err := d.replier.SendText(ctx, chatID, text); err != nil {
		d.logger.Error("send message failed", "chat_id", chatID, "error", err)
	}
}

func (d *Dispatcher) sendButtons(ctx context.Context, chatID int64, text string, rows [][]Button) {
	if err := d.replier.SendButtons(ctx, chatID, text, rows); err != nil {
		d.logger.Error("send message failed", "chat_id", chatID, "error", err)
	}
}
