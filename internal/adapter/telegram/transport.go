// Package telegram bridges the Telegram Bot API and the dispatcher's event
// model. Update payloads and callback tokens are decoded here, once; the
// rest of the system only ever sees typed events.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/bot"
)

// Callback tokens carried inside inline buttons. Opaque outside this
// package.
const (
	cbStartYes      = "start_yes"
	cbStartNo       = "start_no"
	cbGetWeather    = "get_weather"
	cbSetLocation   = "set_location"
	cbWeatherAlerts = "weather_alerts"
	cbTryAgainYes   = "try_again_yes"
	cbTryAgainNo    = "try_again_no"
)

// Transport runs the Telegram long-polling loop and implements bot.Replier.
type Transport struct {
	bot     *tele.Bot
	logger  *slog.Logger
	started atomic.Bool
}

// New creates the transport. It talks to the Telegram API to validate the
// token, so it needs network access.
func New(token string, pollTimeout time.Duration, logger *slog.Logger) (*Transport, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
		OnError: func(err error, c tele.Context) {
			if c != nil && c.Chat() != nil {
				logger.Error("telegram handler error", "chat_id", c.Chat().ID, "error", err)
				return
			}
			logger.Error("telegram error", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Transport{bot: b, logger: logger}, nil
}

// Register wires inbound updates to the dispatcher. Telebot runs each
// handler on its own goroutine, so events for different chats proceed
// concurrently; each event is handled to completion inside its handler.
func (t *Transport) Register(d *bot.Dispatcher) {
	t.bot.Handle("/start", t.forward(d, bot.EventStartCommand))

	t.bot.Handle(&tele.Btn{Unique: cbStartYes}, t.forwardCallback(d, bot.EventStartYes))
	t.bot.Handle(&tele.Btn{Unique: cbStartNo}, t.forwardCallback(d, bot.EventStartNo))
	t.bot.Handle(&tele.Btn{Unique: cbGetWeather}, t.forwardCallback(d, bot.EventGetWeather))
	t.bot.Handle(&tele.Btn{Unique: cbSetLocation}, t.forwardCallback(d, bot.EventSetLocation))
	t.bot.Handle(&tele.Btn{Unique: cbWeatherAlerts}, t.forwardCallback(d, bot.EventWeatherAlerts))
	t.bot.Handle(&tele.Btn{Unique: cbTryAgainYes}, t.forwardCallback(d, bot.EventTryAgainYes))
	t.bot.Handle(&tele.Btn{Unique: cbTryAgainNo}, t.forwardCallback(d, bot.EventTryAgainNo))

	t.bot.Handle(tele.OnText, func(c tele.Context) error {
		d.HandleEvent(context.Background(), bot.Event{
			Type:   bot.EventFreeText,
			ChatID: c.Chat().ID,
			Text:   c.Text(),
		})
		return nil
	})
}

func (t *Transport) forward(d *bot.Dispatcher, evType bot.EventType) tele.HandlerFunc {
	return func(c tele.Context) error {
		d.HandleEvent(context.Background(), bot.Event{Type: evType, ChatID: c.Chat().ID})
		return nil
	}
}

func (t *Transport) forwardCallback(d *bot.Dispatcher, evType bot.EventType) tele.HandlerFunc {
	return func(c tele.Context) error {
		d.HandleEvent(context.Background(), bot.Event{Type: evType, ChatID: c.Chat().ID})
		return c.Respond()
	}
}

// Start begins long polling and blocks until Stop is called.
func (t *Transport) Start() {
	t.started.Store(true)
	t.logger.Info("bot is running", "username", t.bot.Me.Username)
	t.bot.Start()
}

// Stop terminates the polling loop.
func (t *Transport) Stop() {
	t.bot.Stop()
}

// CheckReadiness reports whether polling has started.
func (t *Transport) CheckReadiness(_ context.Context) error {
	if !t.started.Load() {
		return errors.New("bot polling has not started")
	}
	return nil
}

// --- bot.Replier ---

func (t *Transport) SendText(_ context.Context, chatID int64, text string) error {
	_, err := t.bot.Send(tele.ChatID(chatID), text)
	return err
}

func (t *Transport) SendMarkdown(_ context.Context, chatID int64, text string) error {
	_, err := t.bot.Send(tele.ChatID(chatID), text, tele.ModeMarkdown)
	return err
}

func (t *Transport) SendButtons(_ context.Context, chatID int64, text string, rows [][]bot.Button) error {
	_, err := t.bot.Send(tele.ChatID(chatID), text, buildMarkup(rows))
	return err
}

// buildMarkup renders button rows as an inline keyboard.
func buildMarkup(rows [][]bot.Button) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	teleRows := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		teleRow := make(tele.Row, 0, len(row))
		for _, b := range row {
			teleRow = append(teleRow, markup.Data(b.Label, callbackToken(b.Event)))
		}
		teleRows = append(teleRows, teleRow)
	}
	markup.Inline(teleRows...)
	return markup
}

func callbackToken(e bot.EventType) string {
	switch e {
	case bot.EventStartYes:
		return cbStartYes
	case bot.EventStartNo:
		return cbStartNo
	case bot.EventGetWeather:
		return cbGetWeather
	case bot.EventSetLocation:
		return cbSetLocation
	case bot.EventWeatherAlerts:
		return cbWeatherAlerts
	case bot.EventTryAgainYes:
		return cbTryAgainYes
	case bot.EventTryAgainNo:
		return cbTryAgainNo
	default:
		return ""
	}
}
