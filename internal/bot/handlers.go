// internal/bot/handlers.go
package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ozish-bot/internal/models"
	"ozish-bot/internal/program"
)

// Confirmation tokens look like KUN4-a1b2c3.
var tokenPattern = regexp.MustCompile(`^KUN\d+-[0-9a-f]{6}$`)

const adminIDMarker = "🆔 ID:"

func (t *TelegramBot) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	chatID := message.Chat.ID
	userID := message.From.ID

	t.logger.Info("Handling command", "command", command, "user_id", userID)

	switch command {
	case "start":
		if _, ok := t.store.GetUser(userID); ok {
			// Onboarding again would reset progress; records are permanent.
			t.sendWithKeyboard(chatID, alreadyOnboardedText, mainMenuKeyboard())
			return
		}
		t.stateMutex.Lock()
		t.formStates[userID] = &formState{Current: StateName}
		t.stateMutex.Unlock()
		t.send(chatID, startText)

	case "help":
		t.send(chatID, helpText)

	case "day", "kun":
		day, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
		if err != nil || day < 1 {
			t.send(chatID, "Masalan: /day 3")
			return
		}
		res, err := t.controller.ViewDay(userID, day)
		if err != nil {
			if errors.Is(err, program.ErrUserNotFound) {
				t.send(chatID, noUserText)
				return
			}
			t.logger.Error("Failed to view day", "user_id", userID, "day", day, "error", err)
			return
		}
		t.renderView(chatID, res)

	case "stats":
		if userID != t.cfg.Telegram.AdminID {
			t.logger.Info("Ignoring /stats from non-admin", "user_id", userID)
			return
		}
		t.send(chatID, t.buildStats())

	case "broadcast":
		if userID != t.cfg.Telegram.AdminID {
			t.logger.Info("Ignoring /broadcast from non-admin", "user_id", userID)
			return
		}
		text := strings.TrimSpace(message.CommandArguments())
		if text == "" {
			t.send(chatID, "Masalan: /broadcast Ertaga yangi kun!")
			return
		}
		users := t.store.ListUsers()
		for _, u := range users {
			t.notifier.NotifyUser(u.ID, text)
		}
		t.send(chatID, fmt.Sprintf("Yuborildi: %d ta foydalanuvchi", len(users)))

	default:
		t.send(chatID, helpText)
	}
}

func (t *TelegramBot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := message.Text

	if userID == t.cfg.Telegram.AdminID {
		if message.ReplyToMessage != nil && t.relayAdminReply(message) {
			return
		}
		if tokenPattern.MatchString(text) {
			t.confirmToken(chatID, userID, text)
			return
		}
	} else if tokenPattern.MatchString(text) {
		// Well-formed token from a non-admin: dropped, nothing mutated.
		if _, err := t.ledger.Redeem(userID, text); errors.Is(err, program.ErrPermissionDenied) {
			t.logger.Info("Ignoring token from non-admin", "user_id", userID)
		}
		return
	}

	t.stateMutex.RLock()
	state, inForm := t.formStates[userID]
	t.stateMutex.RUnlock()
	if inForm {
		t.handleFormMessage(message, state)
		return
	}

	switch text {
	case btnToday, btnNextDay:
		// Both buttons resolve to the frontier: it is always the next
		// unread day, because reading it advances the pointer.
		res, err := t.controller.ViewFrontier(userID)
		if err != nil {
			if errors.Is(err, program.ErrUserNotFound) {
				t.send(chatID, noUserText)
				return
			}
			t.logger.Error("Failed to view frontier", "user_id", userID, "error", err)
			return
		}
		t.renderView(chatID, res)

	case btnResult:
		u, ok := t.store.GetUser(userID)
		if !ok {
			t.send(chatID, noUserText)
			return
		}
		t.send(chatID, resultText(u.CurrentDay))

	case btnQuestion:
		if _, ok := t.store.GetUser(userID); !ok {
			t.send(chatID, noUserText)
			return
		}
		t.stateMutex.Lock()
		t.formStates[userID] = &formState{Current: StateQuestion}
		t.stateMutex.Unlock()
		t.send(chatID, askQuestionText)

	default:
		t.send(chatID, noUserText)
	}
}

// handleFormMessage walks the onboarding form (and the support question
// state) one answer at a time.
func (t *TelegramBot) handleFormMessage(message *tgbotapi.Message, state *formState) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	switch state.Current {
	case StateName:
		if text == "" {
			t.send(chatID, startText)
			return
		}
		state.Name = text
		state.Current = StateSurname
		t.send(chatID, askSurnameText)

	case StateSurname:
		if text == "" {
			t.send(chatID, askSurnameText)
			return
		}
		state.Surname = text
		state.Current = StateAge
		t.send(chatID, askAgeText)

	case StateAge:
		age, err := strconv.Atoi(text)
		if err != nil || age < 10 || age > 100 {
			t.send(chatID, badAgeText)
			return
		}
		state.Age = age
		state.Current = StateWeight
		t.send(chatID, askWeightText)

	case StateWeight:
		weight, err := strconv.Atoi(text)
		if err != nil || weight < 30 || weight > 300 {
			t.send(chatID, badWeightText)
			return
		}

		user := &models.UserRecord{
			ID:         userID,
			ChatID:     chatID,
			Name:       state.Name,
			Surname:    state.Surname,
			Age:        state.Age,
			Weight:     weight,
			CurrentDay: 1,
		}
		if err := t.store.PutUser(user); err != nil {
			t.logger.Error("Failed to save user", "user_id", userID, "error", err)
			t.send(chatID, "Xatolik yuz berdi, keyinroq urinib ko‘ring.")
			return
		}

		t.stateMutex.Lock()
		delete(t.formStates, userID)
		t.stateMutex.Unlock()

		t.sendWithKeyboard(chatID, onboardedText, mainMenuKeyboard())

	case StateQuestion:
		t.stateMutex.Lock()
		delete(t.formStates, userID)
		t.stateMutex.Unlock()

		name, surname := message.From.FirstName, message.From.LastName
		if u, ok := t.store.GetUser(userID); ok {
			name, surname = u.Name, u.Surname
		}
		question := fmt.Sprintf(
			"❓ Yangi savol\n👤 %s %s\n%s %d\n\n✍️ %s\n\n↩️ Javob berish uchun reply qiling",
			name, surname, adminIDMarker, userID, message.Text)
		t.notifier.NotifyUser(t.cfg.Telegram.AdminID, question)
		t.send(chatID, questionSentText)

	default:
		t.stateMutex.Lock()
		delete(t.formStates, userID)
		t.stateMutex.Unlock()
		t.send(chatID, noUserText)
	}
}

// handlePhoto treats any incoming photo as a payment receipt. The caption,
// if present, is tried as a promo code.
func (t *TelegramBot) handlePhoto(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	// Last photo size is the largest.
	fileID := message.Photo[len(message.Photo)-1].FileID
	promoCode := strings.TrimSpace(message.Caption)

	_, err := t.ledger.Issue(userID, fileID, promoCode)
	switch {
	case err == nil:
		t.send(chatID, receiptAcceptedText)
	case errors.Is(err, program.ErrUserNotFound):
		t.send(chatID, noUserText)
	case errors.Is(err, program.ErrNoPendingPayment):
		t.send(chatID, noPendingPaymentText)
	default:
		t.logger.Error("Failed to issue payment token", "user_id", userID, "error", err)
		t.send(chatID, "Xatolik yuz berdi, keyinroq urinib ko‘ring.")
	}
}

func (t *TelegramBot) confirmToken(chatID, callerID int64, token string) {
	_, err := t.ledger.Redeem(callerID, token)
	switch {
	case err == nil:
		t.send(chatID, tokenRedeemedText)
	case errors.Is(err, program.ErrTokenNotFound):
		t.send(chatID, tokenUnknownText)
	default:
		t.logger.Error("Failed to redeem token", "token", token, "error", err)
	}
}

// relayAdminReply forwards the admin's reply to the user whose id is
// embedded in the replied-to message. Returns false when the replied-to
// message carries no user id marker.
func (t *TelegramBot) relayAdminReply(message *tgbotapi.Message) bool {
	src := message.ReplyToMessage.Text
	if src == "" {
		src = message.ReplyToMessage.Caption
	}
	idx := strings.Index(src, adminIDMarker)
	if idx < 0 {
		return false
	}
	fields := strings.Fields(src[idx+len(adminIDMarker):])
	if len(fields) == 0 {
		return false
	}
	uid, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return false
	}
	t.notifier.NotifyUser(uid, "💬 Admin javobi:\n\n"+message.Text)
	return true
}

func (t *TelegramBot) renderView(chatID int64, res *program.ViewResult) {
	switch res.Kind {
	case program.ViewContent:
		t.sendWithKeyboard(chatID, res.Content, mainMenuKeyboard())
	case program.ViewLockedNotice:
		t.send(chatID, lockedNoticeText(res.Day))
	case program.ViewPaywall:
		t.send(chatID, paywallText(res.Stage, res.Price, t.cfg.Payment.CardNumber))
	}
}

func (t *TelegramBot) buildStats() string {
	users := t.store.ListUsers()

	paidByStage := make(map[int]int)
	awaiting := 0
	finished := 0
	for _, u := range users {
		for _, s := range u.PaidStages {
			paidByStage[s]++
		}
		if u.AwaitingStage != 0 {
			awaiting++
		}
		if u.CurrentDay >= u.TotalDays() {
			finished++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Statistika (%s)\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "Foydalanuvchilar: %d\n", len(users))
	fmt.Fprintf(&b, "To‘lov kutayotganlar: %d\n", awaiting)
	fmt.Fprintf(&b, "Dasturni tugatganlar: %d\n", finished)
	for _, stage := range []int{4, 11, 21, 31} {
		if n := paidByStage[stage]; n > 0 {
			fmt.Fprintf(&b, "%d-bosqich to‘laganlar: %d\n", stage, n)
		}
	}
	return b.String()
}
