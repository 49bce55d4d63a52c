// internal/program/errors.go
package program

import (
	"errors"
)

var (
	// ErrUserNotFound means no onboarding record exists for the user.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoPendingPayment means a receipt was submitted without an active paywall.
	ErrNoPendingPayment = errors.New("no pending payment")

	// ErrTokenNotFound means the token is unknown, mistyped or already redeemed.
	ErrTokenNotFound = errors.New("token not found")

	// ErrPermissionDenied means a non-admin invoked an admin-only operation.
	ErrPermissionDenied = errors.New("permission denied")
)
