// internal/program/ledger_test.go
package program

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ozish-bot/internal/models"
)

func TestIssueRequiresPendingPayment(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 2)

	_, err := env.ledger.Issue(1, "photo-1", "")
	assert.ErrorIs(t, err, ErrNoPendingPayment)

	_, err = env.ledger.Issue(42, "photo-1", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueCreatesTokenAndNotifiesAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 4)

	_, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)

	tok, err := env.ledger.Issue(1, "photo-1", "")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^KUN4-[0-9a-f]{6}$`), tok.Token)
	assert.Equal(t, int64(1), tok.UserID)
	assert.Equal(t, 4, tok.Stage)
	assert.Equal(t, 12000, tok.Price)
	assert.True(t, env.store.TokenExists(tok.Token))

	require.Len(t, env.notifier.adminPhotos, 1)
	assert.Contains(t, env.notifier.adminPhotos[0], tok.Token)
	assert.Contains(t, env.notifier.adminPhotos[0], "12000")
}

func TestRedeemExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 4)

	_, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	tok, err := env.ledger.Issue(1, "photo-1", "")
	require.NoError(t, err)

	redeemed, err := env.ledger.Redeem(testAdminID, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, tok.Token, redeemed.Token)

	u := env.user(t, 1)
	assert.Equal(t, []int{4}, u.PaidStages)
	assert.Equal(t, 4, u.CurrentDay)
	assert.Zero(t, u.AwaitingStage)
	assert.Equal(t, []string{"✅ To‘lov tasdiqlandi"}, env.notifier.userMsgs[1])

	_, err = env.ledger.Redeem(testAdminID, tok.Token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedeemByNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 4)

	_, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	tok, err := env.ledger.Issue(1, "photo-1", "")
	require.NoError(t, err)

	_, err = env.ledger.Redeem(1, tok.Token)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Nothing mutated: the token survives and the user is unchanged.
	assert.True(t, env.store.TokenExists(tok.Token))
	u := env.user(t, 1)
	assert.Empty(t, u.PaidStages)
	assert.Equal(t, 4, u.AwaitingStage)
}

func TestRedeemUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.Redeem(testAdminID, "KUN4-ffffff")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedeemNeverDecreasesCurrentDay(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 12, 4)

	_, err := env.controller.ViewDay(1, 11)
	require.NoError(t, err)
	tok, err := env.ledger.Issue(1, "photo-1", "")
	require.NoError(t, err)
	require.Equal(t, 11, tok.Stage)

	_, err = env.ledger.Redeem(testAdminID, tok.Token)
	require.NoError(t, err)

	u := env.user(t, 1)
	assert.Equal(t, 12, u.CurrentDay, "frontier past the stage stays put")
	assert.ElementsMatch(t, []int{4, 11}, u.PaidStages)
}

func TestIssueAppliesPromo(t *testing.T) {
	env := newTestEnv(t,
		models.Promo{Code: "YOZ50", Kind: models.PromoPercentOff, Amount: 50},
		models.Promo{Code: "DOST", Kind: models.PromoFixedPrice, Amount: 5000},
	)
	env.addUser(t, 1, 78, 4)
	env.addUser(t, 2, 78, 4)

	_, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	tok, err := env.ledger.Issue(1, "photo-1", "YOZ50")
	require.NoError(t, err)
	assert.Equal(t, 6000, tok.Price)
	assert.Equal(t, "YOZ50", tok.PromoCode)

	_, err = env.controller.ViewDay(2, 4)
	require.NoError(t, err)
	tok, err = env.ledger.Issue(2, "photo-2", "DOST")
	require.NoError(t, err)
	assert.Equal(t, 5000, tok.Price)

	// Unknown codes are ignored, full price stands.
	env.addUser(t, 3, 78, 4)
	_, err = env.controller.ViewDay(3, 4)
	require.NoError(t, err)
	tok, err = env.ledger.Issue(3, "photo-3", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, 12000, tok.Price)
	assert.Empty(t, tok.PromoCode)
}
