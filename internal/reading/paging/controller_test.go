package paging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/faults"
	"github.com/vietddude/readflow/internal/fetch"
)

var testRetry = fetch.Config{
	MaxRetries:      0,
	InitialDelay:    1 * time.Millisecond,
	BackoffMultiple: 2.0,
	AttemptTimeout:  time.Second,
}

// fakeFetcher serves a fixed corpus of posts, with optional per-call
// failures and an optional gate to hold a call in flight.
type fakeFetcher struct {
	mu       sync.Mutex
	total    int
	calls    int
	failures map[int]error // call number -> error
	gate     chan struct{} // when set, calls block until closed
	started  chan struct{} // signaled when a gated call begins
}

func (f *fakeFetcher) ListPosts(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	gate := f.gate
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	if err := f.failures[call]; err != nil {
		return domain.PageResult{}, err
	}

	var items []domain.Post
	for i := (req.Page - 1) * req.PageSize; i < req.Page*req.PageSize && i < f.total; i++ {
		items = append(items, domain.Post{ID: fmt.Sprintf("post-%d", i+1)})
	}
	return domain.PageResult{
		Items:      items,
		TotalCount: f.total,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestController(f *fakeFetcher, mode Mode, pageSize int) *Controller {
	return NewController(f, Config{
		Mode:     mode,
		PageSize: pageSize,
		Retry:    testRetry,
	})
}

func TestTraditional_ReplacesResults(t *testing.T) {
	f := &fakeFetcher{total: 47}
	c := newTestController(f, ModeTraditional, 8)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if got := len(c.Results()); got != 8 {
		t.Fatalf("page 1 results = %d, want 8", got)
	}

	if err := c.GoToPage(ctx, 6); err != nil {
		t.Fatalf("GoToPage(6): %v", err)
	}
	results := c.Results()
	if len(results) != 7 {
		t.Fatalf("page 6 results = %d, want 7", len(results))
	}
	if results[0].ID != "post-41" {
		t.Errorf("first item on page 6 = %s, want post-41", results[0].ID)
	}

	start, end, total := c.Progress()
	if start != 41 || end != 47 || total != 47 {
		t.Errorf("Progress() = %d,%d,%d, want 41,47,47", start, end, total)
	}
	if c.HasMore() {
		t.Error("HasMore() on the last page should be false")
	}
}

func TestTraditional_OutOfRangeIsNoop(t *testing.T) {
	f := &fakeFetcher{total: 47}
	c := newTestController(f, ModeTraditional, 8)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	before := f.callCount()

	if err := c.GoToPage(ctx, 0); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("GoToPage(0) = %v, want ErrPageOutOfRange", err)
	}
	if err := c.GoToPage(ctx, 7); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("GoToPage(7) = %v, want ErrPageOutOfRange", err)
	}
	if err := c.PrevPage(ctx); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("PrevPage() on page 1 = %v, want ErrPageOutOfRange", err)
	}

	if f.callCount() != before {
		t.Errorf("out-of-range navigation fired %d extra fetches", f.callCount()-before)
	}
	if got := len(c.Results()); got != 8 {
		t.Errorf("results disturbed by rejected navigation: %d items", got)
	}
}

func TestInfiniteScroll_Appends(t *testing.T) {
	f := &fakeFetcher{total: 25}
	c := newTestController(f, ModeInfiniteScroll, 10)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible: %v", err)
	}
	if got := len(c.Results()); got != 20 {
		t.Fatalf("results after 2 pages = %d, want 20", got)
	}

	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible: %v", err)
	}
	if got := len(c.Results()); got != 25 {
		t.Fatalf("results after 3 pages = %d, want 25", got)
	}
	if c.State() != domain.LoadExhausted {
		t.Errorf("state = %v, want exhausted", c.State())
	}

	// Exhausted is terminal: further signals never fetch.
	before := f.callCount()
	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible after exhaustion: %v", err)
	}
	if f.callCount() != before {
		t.Error("sentinel fired a fetch after exhaustion")
	}
}

func TestInfiniteScroll_DuplicateTriggerSuppressed(t *testing.T) {
	f := &fakeFetcher{
		total:   30,
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	c := newTestController(f, ModeInfiniteScroll, 10)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- c.LoadFirst(ctx) }()
	<-f.started

	// Two back-to-back visibility signals while the load is in flight.
	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible while loading: %v", err)
	}
	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible while loading: %v", err)
	}

	close(f.gate)
	if err := <-done; err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}

	if got := f.callCount(); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}
}

func TestLoadMore_RapidClicksCollapse(t *testing.T) {
	f := &fakeFetcher{
		total:   30,
		gate:    make(chan struct{}),
		started: make(chan struct{}, 4),
	}
	c := newTestController(f, ModeLoadMore, 10)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- c.LoadFirst(ctx) }()
	<-f.started

	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore while loading: %v", err)
	}
	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore while loading: %v", err)
	}

	close(f.gate)
	if err := <-done; err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}

	if got := f.callCount(); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}
}

func TestLoadMore_ExhaustedIsNoop(t *testing.T) {
	f := &fakeFetcher{total: 10}
	c := newTestController(f, ModeLoadMore, 10)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if c.State() != domain.LoadExhausted {
		t.Fatalf("state = %v, want exhausted", c.State())
	}

	before := f.callCount()
	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore after exhaustion: %v", err)
	}
	if f.callCount() != before {
		t.Error("LoadMore fetched after exhaustion")
	}
	if c.State() != domain.LoadExhausted {
		t.Errorf("state = %v, want exhausted", c.State())
	}
}

func TestErrorThenRetry_PreservesResults(t *testing.T) {
	f := &fakeFetcher{
		total:    30,
		failures: map[int]error{2: &faults.StatusError{Status: 500}},
	}
	c := newTestController(f, ModeInfiniteScroll, 10)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}

	if err := c.SentinelVisible(ctx); err == nil {
		t.Fatal("expected page 2 load to fail")
	}
	if c.State() != domain.LoadError {
		t.Fatalf("state = %v, want error", c.State())
	}
	if _, kind := c.LastError(); kind != faults.KindServerError {
		t.Errorf("retained kind = %v, want server_error", kind)
	}
	if got := len(c.Results()); got != 10 {
		t.Fatalf("accumulated results discarded on error: %d items", got)
	}

	// Sentinel signals do not auto-retry from error state.
	before := f.callCount()
	if err := c.SentinelVisible(ctx); err != nil {
		t.Fatalf("SentinelVisible in error state: %v", err)
	}
	if f.callCount() != before {
		t.Error("sentinel fetched while in error state")
	}

	if err := c.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	results := c.Results()
	if len(results) != 20 {
		t.Fatalf("results after retry = %d, want 20", len(results))
	}
	if results[0].ID != "post-1" || results[10].ID != "post-11" {
		t.Error("retry did not append the failed page after the prior results")
	}
}

func TestTraditional_FailedFirstLoadRetry(t *testing.T) {
	f := &fakeFetcher{
		total:    20,
		failures: map[int]error{1: &faults.StatusError{Status: 503}},
	}
	c := newTestController(f, ModeTraditional, 10)

	ctx := context.Background()
	if err := c.LoadFirst(ctx); err == nil {
		t.Fatal("expected initial load to fail")
	}
	if c.State() != domain.LoadError {
		t.Fatalf("state = %v, want error", c.State())
	}

	if err := c.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if got := len(c.Results()); got != 10 {
		t.Errorf("results after retry = %d, want 10", got)
	}
	if c.State() != domain.LoadSuccess {
		t.Errorf("state = %v, want success", c.State())
	}
}

func TestWrongModeTriggers(t *testing.T) {
	f := &fakeFetcher{total: 10}

	c := newTestController(f, ModeTraditional, 10)
	if err := c.SentinelVisible(context.Background()); !errors.Is(err, ErrWrongMode) {
		t.Errorf("SentinelVisible on traditional = %v, want ErrWrongMode", err)
	}
	if err := c.LoadMore(context.Background()); !errors.Is(err, ErrWrongMode) {
		t.Errorf("LoadMore on traditional = %v, want ErrWrongMode", err)
	}

	c = newTestController(f, ModeInfiniteScroll, 10)
	if err := c.GoToPage(context.Background(), 2); !errors.Is(err, ErrWrongMode) {
		t.Errorf("GoToPage on infinite scroll = %v, want ErrWrongMode", err)
	}
}
