// internal/bot/bot_test.go
package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ozish-bot/pkg/logger"
)

func TestParseClock(t *testing.T) {
	m, err := parseClock("06:30")
	require.NoError(t, err)
	assert.Equal(t, 6*60+30, m)

	m, err = parseClock("22:30")
	require.NoError(t, err)
	assert.Equal(t, 22*60+30, m)

	for _, bad := range []string{"", "630", "24:00", "10:60", "aa:bb"} {
		_, err := parseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestTokenPattern(t *testing.T) {
	assert.True(t, tokenPattern.MatchString("KUN4-a1b2c3"))
	assert.True(t, tokenPattern.MatchString("KUN31-00ff00"))
	assert.False(t, tokenPattern.MatchString("KUN4-a1b2c"))
	assert.False(t, tokenPattern.MatchString("KUN4-A1B2C3"))
	assert.False(t, tokenPattern.MatchString("PAY-a1b2c3"))
	assert.False(t, tokenPattern.MatchString("hello KUN4-a1b2c3"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "900", formatPrice(900))
	assert.Equal(t, "12 000", formatPrice(12000))
	assert.Equal(t, "1 250 000", formatPrice(1250000))
}

func TestResultText(t *testing.T) {
	assert.Equal(t, "Tanangiz moslashmoqda.", resultText(2))
	assert.Equal(t, "Birinchi o‘zgarishlar boshlandi.", resultText(5))
	assert.Equal(t, "Natija mustahkamlanmoqda.", resultText(6))
}

func TestReminderNextWakeup(t *testing.T) {
	r := NewReminder(nil, nil, 8, 0, logger.NewNop())

	now := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), r.nextWakeup(now))

	// At or past today's slot, wake up tomorrow.
	now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), r.nextWakeup(now))

	now = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), r.nextWakeup(now))
}
