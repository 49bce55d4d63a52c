// internal/bot/keyboards.go
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button labels. handleMessage matches on these exact strings.
const (
	btnToday    = "📅 Bugungi kun"
	btnNextDay  = "▶️ Keyingi kun"
	btnResult   = "📊 Natijam"
	btnQuestion = "💬 Savol berish"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnNextDay),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnResult),
			tgbotapi.NewKeyboardButton(btnQuestion),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
