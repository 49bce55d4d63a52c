// internal/bot/notifier.go
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ozish-bot/pkg/logger"
)

// telegramNotifier delivers program notifications over the bot API.
// Delivery is fire-and-forget: failures are logged, never retried, and
// never surface to the calling transaction.
type telegramNotifier struct {
	api     *tgbotapi.BotAPI
	adminID int64
	logger  *logger.Logger
}

func newTelegramNotifier(api *tgbotapi.BotAPI, adminID int64, l *logger.Logger) *telegramNotifier {
	return &telegramNotifier{api: api, adminID: adminID, logger: l}
}

// NotifyUser sends text to the user's private chat. For private chats the
// chat id equals the user id.
func (n *telegramNotifier) NotifyUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to notify user", "user_id", userID, "error", err)
	}
}

// NotifyAdminPhoto forwards a receipt photo to the admin with a caption.
func (n *telegramNotifier) NotifyAdminPhoto(fileID, caption string) {
	photo := tgbotapi.NewPhoto(n.adminID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	if _, err := n.api.Send(photo); err != nil {
		n.logger.Error("Failed to notify admin", "error", err)
	}
}
