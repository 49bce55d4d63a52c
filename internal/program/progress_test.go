// internal/program/progress_test.go
package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewDayUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.controller.ViewDay(42, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestViewFrontierAdvancesByOne(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 1)

	res, err := env.controller.ViewDay(1, 1)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, "standard day 1", res.Content)

	assert.Equal(t, 2, env.user(t, 1).CurrentDay)
}

func TestViewPastDayDoesNotAdvance(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 3)

	res, err := env.controller.ViewDay(1, 2)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, 3, env.user(t, 1).CurrentDay, "re-viewing a past day must not move the frontier")
}

func TestViewLockedDayNoMutation(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 2)

	res, err := env.controller.ViewDay(1, 10)
	require.NoError(t, err)
	assert.Equal(t, ViewLockedNotice, res.Kind)
	assert.Equal(t, 10, res.Day)

	u := env.user(t, 1)
	assert.Equal(t, 2, u.CurrentDay)
	assert.Zero(t, u.AwaitingStage)
}

func TestViewPaywallSetsAwaitingStage(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 4)

	res, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	assert.Equal(t, ViewPaywall, res.Kind)
	assert.Equal(t, 4, res.Stage)
	assert.Equal(t, 12000, res.Price)

	u := env.user(t, 1)
	assert.Equal(t, 4, u.AwaitingStage)
	assert.Equal(t, 4, u.CurrentDay, "paywall never advances the frontier")

	// Repeating the tap is idempotent.
	res2, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	assert.Equal(t, res, res2)
	assert.Equal(t, 4, env.user(t, 1).AwaitingStage)
}

func TestLaterPaywallOverwritesPendingStage(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 11)

	_, err := env.controller.ViewDay(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, env.user(t, 1).AwaitingStage)

	res, err := env.controller.ViewDay(1, 11)
	require.NoError(t, err)
	assert.Equal(t, ViewPaywall, res.Kind)
	assert.Equal(t, 11, env.user(t, 1).AwaitingStage, "one pending stage per user, last paywall wins")
}

func TestFrontierStopsAtTrackEnd(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 30, 4, 11, 21)

	res, err := env.controller.ViewDay(1, 30)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, 30, env.user(t, 1).CurrentDay, "frontier never exceeds the track length")

	// Viewing the last day again still shows content.
	res, err = env.controller.ViewDay(1, 30)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, 30, env.user(t, 1).CurrentDay)
}

func TestViewFrontierShowsCurrentDay(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 2)

	res, err := env.controller.ViewFrontier(1)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, 2, res.Day)
	assert.Equal(t, 3, env.user(t, 1).CurrentDay)

	_, err = env.controller.ViewFrontier(7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMissingContentFallsBackToPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, 1, 78, 99)

	// stubContent reports day 99 as missing.
	res, err := env.controller.ViewDay(1, 99)
	require.NoError(t, err)
	assert.Equal(t, ViewContent, res.Kind)
	assert.Equal(t, dayNotFoundText, res.Content)
}
