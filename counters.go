package guide

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
)

// SettingsKey is the store key under which all callout counters are kept as
// one JSON object of "{id}.dismissed" / "{id}.actedUpon" to count.
const SettingsKey = "callout.settings"

// DismissedKey returns the counter key tracking dismissals of id.
func DismissedKey(id string) string { return id + ".dismissed" }

// ActedUponKey returns the counter key tracking ActUpon calls for id.
func ActedUponKey(id string) string { return id + ".actedUpon" }

// KeyValueStore is the persistence port used for counters. Implementations
// must be fast and local; they are called synchronously from the UI thread.
// Get reports found=false with a nil error for a missing key.
type KeyValueStore interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Counters is the durable per-callout counter store. Every read goes to the
// backing store so external resets are seen immediately. Failures are logged
// and read as zero; they never reach callers.
type Counters struct {
	store  KeyValueStore
	logger *log.Logger
}

func newCounters(store KeyValueStore, logger *log.Logger) *Counters {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Counters{store: store, logger: logger}
}

// Count returns the count for key, or 0 if it was never incremented.
func (c *Counters) Count(key string) int {
	state, _ := c.load()
	return state[key]
}

// Increment adds one to the count for key and returns the new value. When
// the stored record cannot be read the increment is not written, so other
// callouts' counts are left intact.
func (c *Counters) Increment(key string) int {
	state, ok := c.load()
	state[key]++
	if !ok {
		return state[key]
	}
	c.save(state)
	return state[key]
}

// ResetAll clears every counter.
func (c *Counters) ResetAll() {
	if err := c.store.Delete(SettingsKey); err != nil {
		c.logger.Warn("reset counters", "err", err)
	}
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int {
	state, _ := c.load()
	return state
}

// load reads the counter record. ok is false when the store failed or the
// record could not be decoded; state is then empty.
func (c *Counters) load() (state map[string]int, ok bool) {
	state = make(map[string]int)
	data, found, err := c.store.Get(SettingsKey)
	if err != nil {
		c.logger.Warn("read counters", "err", err)
		return state, false
	}
	if !found || len(data) == 0 {
		return state, true
	}
	if err := json.Unmarshal(data, &state); err != nil {
		c.logger.Warn("decode counters", "err", err)
		return make(map[string]int), false
	}
	return state, true
}

func (c *Counters) save(state map[string]int) {
	data, err := json.Marshal(state)
	if err != nil {
		c.logger.Warn("encode counters", "err", err)
		return
	}
	if err := c.store.Set(SettingsKey, data); err != nil {
		c.logger.Warn("write counters", "err", err)
	}
}

// --- MemoryStore ---

// MemoryStore is an in-process KeyValueStore. It is the default store and
// the fake used in tests. Values do not survive a restart.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the value for key.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

var _ KeyValueStore = (*MemoryStore)(nil)
