// internal/models/payment.go
package models

import (
	"time"
)

// PaymentToken binds a submitted receipt to a user and a pricing stage.
// A token is redeemable at most once; the ledger deletes it on redemption.
type PaymentToken struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Stage     int       `json:"stage"`
	Price     int       `json:"price,omitempty"`
	PromoCode string    `json:"promo_code,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
}

// PromoKind tags the shape of a promo discount.
type PromoKind string

const (
	PromoFixedPrice PromoKind = "fixed"   // Amount is the final price
	PromoPercentOff PromoKind = "percent" // Amount is a percentage off
)

// Promo is a discount code resolved to a concrete price at token issue time.
type Promo struct {
	Code   string    `json:"code"`
	Kind   PromoKind `json:"kind"`
	Amount int       `json:"amount"`
}

// Apply resolves the discount against a base price.
func (p Promo) Apply(price int) int {
	switch p.Kind {
	case PromoFixedPrice:
		return p.Amount
	case PromoPercentOff:
		price -= price * p.Amount / 100
		if price < 0 {
			price = 0
		}
		return price
	default:
		return price
	}
}
