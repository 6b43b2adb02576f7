// Package quota provides durable quota stores built over pluggable byte
// backends.
package quota

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/smartreplyhq/smartreply"
)

// Backend is the raw persistence capability a Store writes through.
// Load returns (nil, nil) when no record has been saved yet.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// persistedRecord is the stored shape: count plus epoch-millis window
// start, matching what older clients wrote.
type persistedRecord struct {
	Count           int   `json:"count"`
	WindowStartedAt int64 `json:"windowStartedAt"`
}

// Store is a durable call counter with lazy window reset. Persistence is
// best-effort: backend failures and corrupt state fall back to a fresh
// record and are never surfaced.
type Store struct {
	mu      sync.Mutex
	backend Backend
	window  time.Duration
	now     func() time.Time
}

var _ smartreply.QuotaStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithWindow overrides the 24h quota window.
func WithWindow(d time.Duration) Option {
	return func(s *Store) { s.window = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over the given backend.
func NewStore(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		window:  smartreply.DefaultWindow,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the current record, initializing or resetting it first if
// it is absent, corrupt, or expired.
func (s *Store) Read() smartreply.QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Increment applies any pending reset, then counts one more call. The
// read-modify-write happens under one lock hold.
func (s *Store) Increment() smartreply.QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load()
	rec.Count++
	s.save(rec)
	return rec
}

// SetUsed overwrites the counter with a server-reported used count.
func (s *Store) SetUsed(used int) smartreply.QuotaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if used < 0 {
		used = 0
	}
	rec := s.load()
	rec.Count = used
	s.save(rec)
	return rec
}

// load must be called with the lock held.
func (s *Store) load() smartreply.QuotaRecord {
	now := s.now()

	raw, err := s.backend.Load()
	if err != nil || len(raw) == 0 {
		return s.fresh(now)
	}

	var p persistedRecord
	if err := json.Unmarshal(raw, &p); err != nil || p.Count < 0 || p.WindowStartedAt <= 0 {
		return s.fresh(now)
	}

	rec := smartreply.QuotaRecord{
		Count:           p.Count,
		WindowStartedAt: time.UnixMilli(p.WindowStartedAt),
	}
	if now.Sub(rec.WindowStartedAt) >= s.window {
		return s.fresh(now)
	}
	return rec
}

// fresh persists and returns a zeroed record. Persisting immediately
// makes the reset idempotent: later reads observe the saved record, not
// another reset.
func (s *Store) fresh(now time.Time) smartreply.QuotaRecord {
	rec := smartreply.QuotaRecord{WindowStartedAt: now}
	s.save(rec)
	return rec
}

func (s *Store) save(rec smartreply.QuotaRecord) {
	raw, err := json.Marshal(persistedRecord{
		Count:           rec.Count,
		WindowStartedAt: rec.WindowStartedAt.UnixMilli(),
	})
	if err != nil {
		return
	}
	_ = s.backend.Save(raw)
}
