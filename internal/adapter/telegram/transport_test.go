package telegram

import (
	"testing"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackToken_CoversAllButtonEvents(t *testing.T) {
	events := []bot.EventType{
		bot.EventStartYes, bot.EventStartNo,
		bot.EventGetWeather, bot.EventSetLocation, bot.EventWeatherAlerts,
		bot.EventTryAgainYes, bot.EventTryAgainNo,
	}

	seen := map[string]bool{}
	for _, e := range events {
		token := callbackToken(e)
		assert.NotEmpty(t, token, "event %s needs a callback token", e)
		assert.False(t, seen[token], "token %q reused", token)
		seen[token] = true
	}
}

func TestCallbackToken_FreeTextHasNoToken(t *testing.T) {
	assert.Empty(t, callbackToken(bot.EventFreeText))
}

func TestBuildMarkup_PreservesRowLayout(t *testing.T) {
	markup := buildMarkup([][]bot.Button{
		{
			{Label: "Get Weather", Event: bot.EventGetWeather},
			{Label: "Set Location", Event: bot.EventSetLocation},
		},
		{
			{Label: "Weather Alerts", Event: bot.EventWeatherAlerts},
		},
	})

	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	require.Len(t, markup.InlineKeyboard[1], 1)

	assert.Equal(t, "Get Weather", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, cbGetWeather, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "Weather Alerts", markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, cbWeatherAlerts, markup.InlineKeyboard[1][0].Unique)
}
