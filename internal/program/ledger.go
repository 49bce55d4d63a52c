// internal/program/ledger.go
package program

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"ozish-bot/internal/models"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

// Ledger bridges the manual payment check into the data model: it issues
// one-time confirmation tokens when a user submits a receipt and redeems
// them when the admin confirms.
type Ledger struct {
	store    *store.Store
	schedule PricingSchedule
	notifier Notifier
	adminID  int64
	promos   map[string]models.Promo
	logger   *logger.Logger
}

func NewLedger(st *store.Store, schedule PricingSchedule, notifier Notifier, adminID int64, promos []models.Promo, l *logger.Logger) *Ledger {
	byCode := make(map[string]models.Promo, len(promos))
	for _, p := range promos {
		byCode[p.Code] = p
	}
	return &Ledger{
		store:    st,
		schedule: schedule,
		notifier: notifier,
		adminID:  adminID,
		promos:   byCode,
		logger:   l,
	}
}

const tokenRandBytes = 3 // 6 hex characters

// Issue creates a confirmation token for the user's pending stage and sends
// the receipt photo with the token to the admin for visual verification.
// The user must have been shown a paywall first.
func (l *Ledger) Issue(userID int64, photoFileID, promoCode string) (*models.PaymentToken, error) {
	u, ok := l.store.GetUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	if u.AwaitingStage == 0 {
		return nil, ErrNoPendingPayment
	}

	stage := u.AwaitingStage
	price := 0
	if tier, ok := l.schedule.StageTier(u.Track(), stage); ok {
		price = tier.Price
	}

	var appliedPromo string
	if promo, ok := l.promos[promoCode]; ok && promoCode != "" {
		price = promo.Apply(price)
		appliedPromo = promo.Code
	}

	token, err := l.generateToken(stage)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment token: %w", err)
	}

	t := &models.PaymentToken{
		Token:     token,
		UserID:    userID,
		Stage:     stage,
		Price:     price,
		PromoCode: appliedPromo,
		IssuedAt:  time.Now(),
	}
	if err := l.store.PutToken(t); err != nil {
		return nil, fmt.Errorf("failed to store payment token: %w", err)
	}

	caption := fmt.Sprintf(
		"To‘lov cheki\n👤 %s %s\n🆔 ID: %d\n📍 Bosqich: %d-kun\n💵 Narx: %d so‘m",
		u.Name, u.Surname, userID, stage, price)
	if appliedPromo != "" {
		caption += fmt.Sprintf("\n🎁 Promo: %s", appliedPromo)
	}
	caption += fmt.Sprintf("\n\nTasdiqlash uchun yuboring: %s", token)
	l.notifier.NotifyAdminPhoto(photoFileID, caption)

	l.logger.Info("Payment token issued",
		"user_id", userID, "stage", stage, "token", token)
	return t, nil
}

// generateToken builds a stage-prefixed token unique within the ledger,
// e.g. KUN4-a1b2c3.
func (l *Ledger) generateToken(stage int) (string, error) {
	for {
		buf := make([]byte, tokenRandBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		token := fmt.Sprintf("KUN%d-%s", stage, hex.EncodeToString(buf))
		if !l.store.TokenExists(token) {
			return token, nil
		}
	}
}

// Redeem confirms a payment: the admin sends back the token from the
// receipt caption. The token is removed exactly once; the paid stage is
// recorded on the user and the frontier jumps forward to the stage's first
// day if it hasn't reached it yet. CurrentDay never decreases.
func (l *Ledger) Redeem(callerID int64, token string) (*models.PaymentToken, error) {
	if callerID != l.adminID {
		return nil, ErrPermissionDenied
	}

	t, ok := l.store.TakeToken(token)
	if !ok {
		return nil, ErrTokenNotFound
	}

	_, err := l.store.UpdateUser(t.UserID, func(u *models.UserRecord) error {
		u.AddPaidStage(t.Stage)
		if u.AwaitingStage == t.Stage {
			u.AwaitingStage = 0
		}
		if u.CurrentDay < t.Stage {
			u.CurrentDay = t.Stage
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply redemption of %s: %w", token, err)
	}

	l.notifier.NotifyUser(t.UserID, "✅ To‘lov tasdiqlandi")

	l.logger.Info("Payment token redeemed",
		"user_id", t.UserID, "stage", t.Stage, "token", token)
	return t, nil
}
