// Package history keeps the locally persisted reading state: a bounded,
// deduplicated list of recently viewed posts and an unbounded bookmark set.
// It performs no network I/O; the recommendations query reads from it.
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/readflow/internal/infra/kv"
	"github.com/vietddude/readflow/internal/metrics"
)

const (
	// ViewHistoryKey and BookmarksKey are the fixed kv keys the store
	// serializes under.
	ViewHistoryKey = "readflow:view_history"
	BookmarksKey   = "readflow:bookmarks"

	// DefaultCapacity bounds the view-history list.
	DefaultCapacity = 50
)

// Entry is one recorded view.
type Entry struct {
	ContentID string    `json:"contentId"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// Store is the recency/bookmark store. Construct it with NewStore; the kv
// backend is injected so tests can use an in-memory double.
//
// If the backend fails, the store degrades to in-memory-only for the rest of
// the session instead of surfacing errors to callers.
type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	capacity  int
	views     []Entry
	bookmarks []string
	degraded  bool
}

// NewStore loads existing state from the backend. A load failure starts the
// session degraded (empty, in-memory only).
func NewStore(ctx context.Context, backend kv.Store, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{kv: backend, capacity: capacity}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if raw, ok, err := s.kv.Get(ctx, ViewHistoryKey); err != nil {
		s.degrade("load view history", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.views); err != nil {
			slog.Warn("discarding corrupt view history", "error", err)
			s.views = nil
		}
	}

	if raw, ok, err := s.kv.Get(ctx, BookmarksKey); err != nil {
		s.degrade("load bookmarks", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.bookmarks); err != nil {
			slog.Warn("discarding corrupt bookmarks", "error", err)
			s.bookmarks = nil
		}
	}

	if len(s.views) > s.capacity {
		s.views = s.views[:s.capacity]
	}

	metrics.HistorySize.Set(float64(len(s.views)))
	metrics.BookmarksSize.Set(float64(len(s.bookmarks)))
}

// TrackView records a view of contentId. An already-present id moves to the
// front rather than duplicating; the oldest entry is evicted at capacity.
func (s *Store) TrackView(ctx context.Context, contentID string) {
	if contentID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{ContentID: contentID, ViewedAt: time.Now().UTC()}
	views := make([]Entry, 0, len(s.views)+1)
	views = append(views, entry)
	for _, e := range s.views {
		if e.ContentID != contentID {
			views = append(views, e)
		}
	}
	if len(views) > s.capacity {
		views = views[:s.capacity]
	}
	s.views = views

	metrics.HistorySize.Set(float64(len(s.views)))
	s.persist(ctx, ViewHistoryKey, s.views)
}

// ViewedIDs returns viewed content ids, most recent first. A limit <= 0
// returns all entries.
func (s *Store) ViewedIDs(limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.views)
	if limit > 0 && limit < n {
		n = limit
	}
	ids := make([]string, 0, n)
	for _, e := range s.views[:n] {
		ids = append(ids, e.ContentID)
	}
	return ids
}

// Entries returns a copy of the full view history, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.views))
	copy(out, s.views)
	return out
}

// AddBookmark adds contentId to the bookmark set.
func (s *Store) AddBookmark(ctx context.Context, contentID string) {
	if contentID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.bookmarks {
		if id == contentID {
			return
		}
	}
	s.bookmarks = append(s.bookmarks, contentID)

	metrics.BookmarksSize.Set(float64(len(s.bookmarks)))
	s.persist(ctx, BookmarksKey, s.bookmarks)
}

// RemoveBookmark removes contentId from the bookmark set.
func (s *Store) RemoveBookmark(ctx context.Context, contentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bookmarks[:0]
	removed := false
	for _, id := range s.bookmarks {
		if id == contentID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return
	}
	s.bookmarks = kept

	metrics.BookmarksSize.Set(float64(len(s.bookmarks)))
	s.persist(ctx, BookmarksKey, s.bookmarks)
}

// IsBookmarked reports whether contentId is bookmarked.
func (s *Store) IsBookmarked(contentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.bookmarks {
		if id == contentID {
			return true
		}
	}
	return false
}

// Bookmarks returns a copy of the bookmarked ids in insertion order.
func (s *Store) Bookmarks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

// ClearAll empties both the view history and the bookmark set.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views = nil
	s.bookmarks = nil

	metrics.HistorySize.Set(0)
	metrics.BookmarksSize.Set(0)

	if s.degraded {
		return
	}
	if err := s.kv.Delete(ctx, ViewHistoryKey); err != nil {
		s.degrade("clear view history", err)
		return
	}
	if err := s.kv.Delete(ctx, BookmarksKey); err != nil {
		s.degrade("clear bookmarks", err)
	}
}

// persist writes v under key. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, key string, v any) {
	if s.degraded {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.degrade("marshal "+key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.degrade("persist "+key, err)
	}
}

// degrade flips the store to in-memory-only for the rest of the session.
// Logged once; subsequent operations stay silent.
func (s *Store) degrade(op string, err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	slog.Warn("history store unavailable, continuing in memory only",
		"op", op,
		"error", err,
	)
}
