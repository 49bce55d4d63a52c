// internal/store/store.go
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"ozish-bot/internal/models"
	"ozish-bot/pkg/logger"
)

// Store is the durable home of user records and payment tokens. Both
// collections live in memory behind one RWMutex and are written through to
// flat JSON files on every mutation, so a read issued after a mutation
// returns always sees it. A coarse single-writer lock is the accepted
// policy at this load.
type Store struct {
	mu     sync.RWMutex
	users  map[int64]*models.UserRecord
	tokens map[string]*models.PaymentToken

	usersFile  string
	tokensFile string
	fileLock   *flock.Flock
	logger     *logger.Logger
}

// Open loads (or creates) users.json and tokens.json under dir and takes an
// advisory file lock against a second process instance. A file that fails to
// parse is treated as empty: losing the collection is preferred over
// refusing to start.
func Open(dir string, l *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	fl := flock.New(filepath.Join(dir, ".lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire data dir lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("data dir %s is locked by another instance", dir)
	}

	s := &Store{
		users:      make(map[int64]*models.UserRecord),
		tokens:     make(map[string]*models.PaymentToken),
		usersFile:  filepath.Join(dir, "users.json"),
		tokensFile: filepath.Join(dir, "tokens.json"),
		fileLock:   fl,
		logger:     l,
	}

	if err := loadJSON(s.usersFile, &s.users); err != nil {
		l.Error("Failed to load users, starting with empty collection", "error", err)
		s.users = make(map[int64]*models.UserRecord)
	}
	if err := loadJSON(s.tokensFile, &s.tokens); err != nil {
		l.Error("Failed to load tokens, starting with empty collection", "error", err)
		s.tokens = make(map[string]*models.PaymentToken)
	}

	return s, nil
}

// Close releases the advisory file lock. Data is already durable: every
// mutation is written through before it returns.
func (s *Store) Close() error {
	if s.fileLock != nil {
		return s.fileLock.Unlock()
	}
	return nil
}

func loadJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// atomicWriteJSON writes via a temp file and rename so a crash mid-write
// never leaves a truncated collection behind.
func atomicWriteJSON(path string, data interface{}) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// saveUsers and saveTokens are called with s.mu already held for writing.
func (s *Store) saveUsers() error {
	return atomicWriteJSON(s.usersFile, s.users)
}

func (s *Store) saveTokens() error {
	return atomicWriteJSON(s.tokensFile, s.tokens)
}

// GetUser returns a copy of the user's record.
func (s *Store) GetUser(id int64) (*models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	cp.PaidStages = append([]int(nil), u.PaidStages...)
	return &cp, true
}

// PutUser inserts or replaces a user record.
func (s *Store) PutUser(u *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	cp := *u
	cp.PaidStages = append([]int(nil), u.PaidStages...)
	s.users[u.ID] = &cp
	return s.saveUsers()
}

// UpdateUser runs fn against the stored record under the write lock, so
// concurrent read-modify-write cycles on the same user cannot lose updates.
// fn returning an error aborts the update without mutating anything.
// It returns a copy of the record after the update.
func (s *Store) UpdateUser(id int64, fn func(u *models.UserRecord) error) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	work := *u
	work.PaidStages = append([]int(nil), u.PaidStages...)
	if err := fn(&work); err != nil {
		return nil, err
	}
	work.UpdatedAt = time.Now()
	s.users[id] = &work
	if err := s.saveUsers(); err != nil {
		return nil, err
	}
	cp := work
	cp.PaidStages = append([]int(nil), work.PaidStages...)
	return &cp, nil
}

// ListUsers returns copies of every user record.
func (s *Store) ListUsers() []*models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.UserRecord, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		cp.PaidStages = append([]int(nil), u.PaidStages...)
		out = append(out, &cp)
	}
	return out
}

func (s *Store) CountUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// TokenExists reports whether a token is currently in the ledger.
func (s *Store) TokenExists(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// PutToken stores a freshly issued token.
func (s *Store) PutToken(t *models.PaymentToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tokens[t.Token] = &cp
	return s.saveTokens()
}

// TakeToken removes the token from the ledger and returns it. The removal
// happens under the write lock, so a token can be taken exactly once.
func (s *Store) TakeToken(token string) (*models.PaymentToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	delete(s.tokens, token)
	if err := s.saveTokens(); err != nil {
		s.logger.Error("Failed to persist token removal", "token", token, "error", err)
	}
	cp := *t
	return &cp, true
}
