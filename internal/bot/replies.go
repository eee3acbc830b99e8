package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
)

// User-facing message texts. The wording is part of the bot's observable
// behavior and is covered by the dispatcher tests.
const (
	msgWelcome = "Hi there! I'm your personal weather assistant, here to help you stay prepared " +
		"for anything Mother Nature throws your way! Would you like to start using this bot?"
	msgStartYes           = "Great! Let's get started. 😊"
	msgMenuPrompt         = "What would you like to do next?"
	msgStartNo            = "Alright! If you change your mind, just type /start to begin. 😊"
	msgAskWeatherLocation = "Please enter a location to get the weather:"
	msgAskSaveLocation    = "Please enter the location you'd like to save for updates:"
	msgAlertsStub         = "Weather alerts feature is under development!"
	msgTryAgain           = "This location could not be found. Would you like to try again?"
	msgNotSaved           = "Okay, the location wasn't saved. If you'd like to try again, just type a location."
	msgUseMenu            = "Please use the menu options. Type /start to see available commands."
	msgWeatherIntro       = "Here's the weather!"
	msgWeatherUnavailable = "Sorry, I could not retrieve the weather information."
	msgNoWeatherData      = "No weather data available."
	msgNoDescription      = "No weather description available."
	msgSaveError          = "Sorry, there was an error saving your location."
	msgUnexpected         = "Sorry, an unexpected error occurred."
)

// Button is an inline keyboard action offered to the user. The transport
// maps Event back to its opaque callback token.
type Button struct {
	Label string
	Event EventType
}

// Replier delivers outbound messages to a chat.
type Replier interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendMarkdown(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]Button) error
}

// startButtons is the Yes/No pair under the welcome prompt.
func startButtons() [][]Button {
	return [][]Button{{
		{Label: "Yes", Event: EventStartYes},
		{Label: "No", Event: EventStartNo},
	}}
}

// menuButtons is the feature menu: two actions on the first row, alerts on
// the second.
func menuButtons() [][]Button {
	return [][]Button{
		{
			{Label: "Get Weather", Event: EventGetWeather},
			{Label: "Set Location", Event: EventSetLocation},
		},
		{
			{Label: "Weather Alerts", Event: EventWeatherAlerts},
		},
	}
}

// tryAgainButtons is the Yes/No pair offered after a failed save.
func tryAgainButtons() [][]Button {
	return [][]Button{{
		{Label: "Yes", Event: EventTryAgainYes},
		{Label: "No", Event: EventTryAgainNo},
	}}
}

// weatherMessage renders the Markdown weather card.
func weatherMessage(s domain.Summary) string {
	return fmt.Sprintf("*Weather:* %s\n*Temperature:* %s°C", s.Description, s.Temperature)
}

// savedMessage renders the confirmation with the full saved-locations list.
func savedMessage(locations []string) string {
	var b strings.Builder
	b.WriteString("Location verified and saved successfully!\nYour saved locations:")
	for _, loc := range locations {
		b.WriteString("\n📍 ")
		b.WriteString(loc)
	}
	return b.String()
}

// duplicateMessage renders the already-saved notice.
func duplicateMessage(location string) string {
	return fmt.Sprintf("Location '%s' is already in your saved locations.", location)
}
