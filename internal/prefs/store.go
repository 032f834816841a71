package prefs

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"civichub/pkg/models"
)

// MaxHistory bounds the recently-viewed sequence.
const MaxHistory = 50

// Default keys for the single-user (local) store. Server deployments
// namespace per user via Manager.
const (
	DefaultFavoritesKey = "favorites"
	DefaultHistoryKey   = "history"
)

type write struct {
	key     string
	payload string
}

// Store holds one user's favorites set and bounded reading history.
//
// Mutations update in-memory state synchronously and enqueue a durable
// write-through; a single writer goroutine applies writes in issue order,
// so a slow early write can never clobber a fast later one. Write failures
// on these optimistic paths are logged and swallowed. Clear operations
// delete durable state synchronously and return the error, since losing a
// clear is higher-stakes than a missed background sync.
type Store struct {
	kv      KV
	favKey  string
	histKey string

	mu        sync.Mutex
	loaded    bool
	favorites map[string]struct{}
	history   []models.HistoryEntry

	writes chan write
	done   chan struct{}
	closed bool

	initOnce sync.Once
	initErr  error
}

func NewStore(kv KV, favKey, histKey string) *Store {
	s := &Store{
		kv:        kv,
		favKey:    favKey,
		histKey:   histKey,
		favorites: make(map[string]struct{}),
		writes:    make(chan write, 128),
		done:      make(chan struct{}),
	}
	go s.writer()
	return s
}

func (s *Store) writer() {
	defer close(s.done)
	for w := range s.writes {
		if err := s.kv.Set(context.Background(), w.key, w.payload); err != nil {
			log.Printf("[prefs] write-through %s failed: %v", w.key, err)
		}
	}
}

// Initialize loads both collections from durable storage, exactly once per
// store; concurrent callers block on the first load instead of re-running
// it, so a mutation applied after the load can never be overwritten by a
// second in-flight load. Unreadable or malformed data falls back to empty:
// durability is best-effort, in-memory correctness is guaranteed. Until
// Initialize returns, Loaded reports false so callers can distinguish
// "empty" from "still loading".
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.load(ctx)
	})
	return s.initErr
}

func (s *Store) load(ctx context.Context) error {
	favs := make(map[string]struct{})
	if raw, ok, err := s.kv.Get(ctx, s.favKey); err != nil {
		log.Printf("[prefs] load %s failed: %v", s.favKey, err)
	} else if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			log.Printf("[prefs] malformed %s, starting empty: %v", s.favKey, err)
		} else {
			for _, id := range ids {
				favs[id] = struct{}{}
			}
		}
	}

	var history []models.HistoryEntry
	if raw, ok, err := s.kv.Get(ctx, s.histKey); err != nil {
		log.Printf("[prefs] load %s failed: %v", s.histKey, err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			log.Printf("[prefs] malformed %s, starting empty: %v", s.histKey, err)
			history = nil
		}
		if len(history) > MaxHistory {
			history = history[:MaxHistory]
		}
	}

	s.mu.Lock()
	s.favorites = favs
	s.history = history
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether Initialize has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// AddFavorite is idempotent: re-adding a favorited id changes nothing.
func (s *Store) AddFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; ok {
		return
	}
	s.favorites[id] = struct{}{}
	s.enqueueFavoritesLocked()
}

func (s *Store) RemoveFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; !ok {
		return
	}
	delete(s.favorites, id)
	s.enqueueFavoritesLocked()
}

// ToggleFavorite flips membership against the current snapshot and returns
// the new state. Read and write happen under the same lock, so two
// concurrent toggles cannot race a stale snapshot.
func (s *Store) ToggleFavorite(id string) (favorited bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[id]; ok {
		delete(s.favorites, id)
		favorited = false
	} else {
		s.favorites[id] = struct{}{}
		favorited = true
	}
	s.enqueueFavoritesLocked()
	return favorited
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[id]
	return ok
}

func (s *Store) FavoritesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

// Favorites returns the favorite ids sorted for deterministic output.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ClearFavorites empties the set and deletes the durable copy. The durable
// delete is synchronous and its error is returned.
func (s *Store) ClearFavorites(ctx context.Context) error {
	s.mu.Lock()
	s.favorites = make(map[string]struct{})
	s.mu.Unlock()
	return s.kv.Delete(ctx, s.favKey)
}

// RecordVisit prepends the entry, drops any earlier entry for the same
// topic (a re-visit moves to the front rather than duplicating) and trims
// to MaxHistory.
func (s *Store) RecordVisit(entry models.HistoryEntry) {
	if entry.ViewedAt.IsZero() {
		entry.ViewedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.HistoryEntry, 0, len(s.history)+1)
	next = append(next, entry)
	for _, e := range s.history {
		if e.TopicID == entry.TopicID {
			continue
		}
		next = append(next, e)
	}
	if len(next) > MaxHistory {
		next = next[:MaxHistory]
	}
	s.history = next
	s.enqueueHistoryLocked()
}

// LastRead returns the most recent history entry.
func (s *Store) LastRead() (models.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return models.HistoryEntry{}, false
	}
	return s.history[0], true
}

// Recent returns a copy of the history, most recent first.
func (s *Store) Recent() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory empties the sequence and deletes the durable copy,
// returning the delete error.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	return s.kv.Delete(ctx, s.histKey)
}

func (s *Store) enqueueFavoritesLocked() {
	if s.closed {
		return
	}
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	b, err := json.Marshal(ids)
	if err != nil {
		log.Printf("[prefs] marshal favorites failed: %v", err)
		return
	}
	s.writes <- write{key: s.favKey, payload: string(b)}
}

func (s *Store) enqueueHistoryLocked() {
	if s.closed {
		return
	}
	b, err := json.Marshal(s.history)
	if err != nil {
		log.Printf("[prefs] marshal history failed: %v", err)
		return
	}
	s.writes <- write{key: s.histKey, payload: string(b)}
}

// Close stops the writer after draining queued writes.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.writes)
	<-s.done
}
