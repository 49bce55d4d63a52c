// internal/bot/telegram.go
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ozish-bot/internal/config"
	"ozish-bot/internal/program"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

// Onboarding form states.
const (
	StateName     = "name"
	StateSurname  = "surname"
	StateAge      = "age"
	StateWeight   = "weight"
	StateQuestion = "question"
)

type formState struct {
	Current string
	Name    string
	Surname string
	Age     int
}

type TelegramBot struct {
	bot        *tgbotapi.BotAPI
	store      *store.Store
	controller *program.Controller
	ledger     *program.Ledger
	notifier   program.Notifier
	reminder   *Reminder
	cfg        *config.Config
	logger     *logger.Logger

	formStates map[int64]*formState
	stateMutex sync.RWMutex

	quietStart int // minutes from midnight
	quietEnd   int
}

func NewTelegramBot(cfg *config.Config, st *store.Store, content program.ContentProvider, l *logger.Logger) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	l.Info("Authorized on Telegram", "username", api.Self.UserName)

	notifier := newTelegramNotifier(api, cfg.Telegram.AdminID, l)
	schedule := program.DefaultSchedule()
	gate := program.NewGate(schedule)
	controller := program.NewController(st, gate, content, l)
	ledger := program.NewLedger(st, schedule, notifier, cfg.Telegram.AdminID, cfg.Payment.Promos, l)
	reminder := NewReminder(st, notifier, cfg.Reminder.Hour, cfg.Reminder.Minute, l)

	quietStart, err := parseClock(cfg.QuietHours.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid quiet hours start: %w", err)
	}
	quietEnd, err := parseClock(cfg.QuietHours.End)
	if err != nil {
		return nil, fmt.Errorf("invalid quiet hours end: %w", err)
	}

	return &TelegramBot{
		bot:        api,
		store:      st,
		controller: controller,
		ledger:     ledger,
		notifier:   notifier,
		reminder:   reminder,
		cfg:        cfg,
		logger:     l,
		formStates: make(map[int64]*formState),
		quietStart: quietStart,
		quietEnd:   quietEnd,
	}, nil
}

// parseClock turns "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return h*60 + m, nil
}

// Start begins receiving updates via long polling and launches the daily
// reminder loop. Both stop when ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Removing any existing webhook")
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := t.bot.GetUpdatesChan(updateConfig)
	t.logger.Info("Started receiving Telegram updates")

	go t.handleUpdates(ctx, updates)
	go t.reminder.Run(ctx)

	return nil
}

func (t *TelegramBot) handleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		select {
		case <-ctx.Done():
			return
		default:
		}

		go func(update tgbotapi.Update) {
			defer func() {
				if r := recover(); r != nil {
					t.logger.Error("Recovered from panic while processing update", "error", r)
				}
			}()

			if update.Message == nil {
				return
			}
			msg := update.Message

			if !t.withinServiceHours(time.Now()) && msg.From.ID != t.cfg.Telegram.AdminID {
				t.send(msg.Chat.ID, quietHoursText)
				return
			}

			if msg.IsCommand() {
				t.handleCommand(msg)
				return
			}
			if len(msg.Photo) > 0 {
				t.handlePhoto(msg)
				return
			}
			t.handleMessage(msg)
		}(update)
	}
}

// withinServiceHours applies the service window to regular users. The admin
// is exempt so confirmations work at any hour.
func (t *TelegramBot) withinServiceHours(now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()
	return minute >= t.quietStart && minute <= t.quietEnd
}

// Stop gracefully shuts down the bot.
func (t *TelegramBot) Stop(ctx context.Context) error {
	t.bot.StopReceivingUpdates()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (t *TelegramBot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func (t *TelegramBot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}
