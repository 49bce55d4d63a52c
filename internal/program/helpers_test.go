// internal/program/helpers_test.go
package program

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ozish-bot/internal/models"
	"ozish-bot/internal/store"
	"ozish-bot/pkg/logger"
)

const testAdminID int64 = 999

type stubContent struct{}

func (stubContent) DayText(track models.Track, day int) (string, bool) {
	if day == 99 {
		return "", false
	}
	return fmt.Sprintf("%s day %d", track, day), true
}

type stubNotifier struct {
	mu          sync.Mutex
	userMsgs    map[int64][]string
	adminPhotos []string
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{userMsgs: make(map[int64][]string)}
}

func (n *stubNotifier) NotifyUser(userID int64, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userMsgs[userID] = append(n.userMsgs[userID], text)
}

func (n *stubNotifier) NotifyAdminPhoto(fileID, caption string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adminPhotos = append(n.adminPhotos, caption)
}

type testEnv struct {
	store      *store.Store
	gate       *Gate
	controller *Controller
	ledger     *Ledger
	notifier   *stubNotifier
}

func newTestEnv(t *testing.T, promos ...models.Promo) *testEnv {
	t.Helper()

	st, err := store.Open(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	schedule := DefaultSchedule()
	notifier := newStubNotifier()
	gate := NewGate(schedule)

	return &testEnv{
		store:      st,
		gate:       gate,
		controller: NewController(st, gate, stubContent{}, logger.NewNop()),
		ledger:     NewLedger(st, schedule, notifier, testAdminID, promos, logger.NewNop()),
		notifier:   notifier,
	}
}

func (e *testEnv) addUser(t *testing.T, id int64, weight, currentDay int, paidStages ...int) {
	t.Helper()
	u := &models.UserRecord{
		ID:         id,
		ChatID:     id,
		Name:       "Test",
		Surname:    "User",
		Age:        30,
		Weight:     weight,
		CurrentDay: currentDay,
		PaidStages: paidStages,
	}
	require.NoError(t, e.store.PutUser(u))
}

func (e *testEnv) user(t *testing.T, id int64) *models.UserRecord {
	t.Helper()
	u, ok := e.store.GetUser(id)
	require.True(t, ok)
	return u
}
