// Package paging owns the post-list result set and its load state. One
// Controller serves one UI surface in one of three modes: traditional page
// navigation (each page replaces the results), infinite scroll (sentinel
// visibility appends the next page), and load-more (an explicit action
// appends the next page).
package paging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/faults"
	"github.com/vietddude/readflow/internal/fetch"
	"github.com/vietddude/readflow/internal/metrics"
)

type Mode string

const (
	ModeTraditional    Mode = "traditional"
	ModeInfiniteScroll Mode = "infinite_scroll"
	ModeLoadMore       Mode = "load_more"
)

// DefaultWindowWidth is the visible page-number window for traditional mode.
const DefaultWindowWidth = 5

var (
	// ErrPageOutOfRange is returned when a requested page is outside
	// [1, totalPages]. Callers should disable the control instead of
	// clamping, so the UI stays truthful about position.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrWrongMode is returned when a trigger does not belong to the
	// controller's mode.
	ErrWrongMode = errors.New("trigger not valid for pagination mode")
)

// PageFetcher fetches one page of the post list.
type PageFetcher interface {
	ListPosts(ctx context.Context, req domain.PageRequest) (domain.PageResult, error)
}

// Config configures a Controller.
type Config struct {
	Mode        Mode
	PageSize    int
	WindowWidth int               // traditional mode page window, default 5
	Filters     map[string]string // passed through on every request
	Retry       fetch.Config
}

// Controller drives page loads through the retry executor and holds the
// accumulated result set. All methods are safe for concurrent use; a load
// observed while another is outstanding is ignored, not queued.
type Controller struct {
	fetcher PageFetcher
	cfg     Config

	mu         sync.Mutex
	results    []domain.Post
	page       int // last applied page, 0 before the first load
	totalCount int
	state      domain.LoadState
	hasMore    bool
	lastKind   faults.Kind
	lastErr    error
	failedPage int
	seq        uint64 // issued fetch sequence; stale responses are discarded
}

// NewController creates a Controller in Idle state.
func NewController(fetcher PageFetcher, cfg Config) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = DefaultWindowWidth
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeTraditional
	}
	return &Controller{
		fetcher: fetcher,
		cfg:     cfg,
		state:   domain.LoadIdle,
		hasMore: true,
	}
}

// LoadFirst loads page 1. In append modes it resets any accumulated results.
func (c *Controller) LoadFirst(ctx context.Context) error {
	c.mu.Lock()
	if c.state == domain.LoadLoading {
		c.mu.Unlock()
		return nil
	}
	c.results = nil
	c.page = 0
	c.totalCount = 0
	c.hasMore = true
	c.state = domain.LoadIdle
	c.mu.Unlock()

	return c.loadPage(ctx, 1)
}

// GoToPage requests a specific page in traditional mode, replacing the
// current results. Out-of-range pages are rejected, not clamped.
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	if c.cfg.Mode != ModeTraditional {
		return ErrWrongMode
	}

	c.mu.Lock()
	if page < 1 || (c.totalCount > 0 && page > c.totalPagesLocked()) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	c.mu.Unlock()

	return c.loadPage(ctx, page)
}

// NextPage and PrevPage navigate relative to the current page.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	target := c.page + 1
	c.mu.Unlock()
	return c.GoToPage(ctx, target)
}

func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	target := c.page - 1
	c.mu.Unlock()
	return c.GoToPage(ctx, target)
}

// SentinelVisible reports that the scroll sentinel entered the viewport.
// The next page is fetched only when the controller is idle with more
// content available; repeated signals during a load are ignored.
func (c *Controller) SentinelVisible(ctx context.Context) error {
	if c.cfg.Mode != ModeInfiniteScroll {
		return ErrWrongMode
	}
	return c.loadNext(ctx)
}

// LoadMore handles the explicit load-more action. Rapid repeated calls while
// a load is outstanding collapse to a single fetch.
func (c *Controller) LoadMore(ctx context.Context) error {
	if c.cfg.Mode != ModeLoadMore {
		return ErrWrongMode
	}
	return c.loadNext(ctx)
}

// Retry re-issues the page whose load failed. Accumulated results from
// earlier successful pages are untouched.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.LoadError {
		c.mu.Unlock()
		return nil
	}
	target := c.failedPage
	c.state = domain.LoadIdle
	c.mu.Unlock()

	return c.loadPage(ctx, target)
}

func (c *Controller) loadNext(ctx context.Context) error {
	c.mu.Lock()
	// Sole trigger condition: idle (or settled) with more content. This is
	// evaluated under the lock so bursts of signals cannot double-fire.
	if c.state == domain.LoadLoading || c.state == domain.LoadError ||
		c.state == domain.LoadExhausted || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	target := c.page + 1
	c.mu.Unlock()

	return c.loadPage(ctx, target)
}

// loadPage performs one guarded fetch cycle for target.
func (c *Controller) loadPage(ctx context.Context, target int) error {
	c.mu.Lock()
	if c.state == domain.LoadLoading {
		c.mu.Unlock()
		return nil
	}
	c.state = domain.LoadLoading
	c.seq++
	mySeq := c.seq
	c.mu.Unlock()

	req := domain.PageRequest{
		Page:     target,
		PageSize: c.cfg.PageSize,
		Filters:  c.cfg.Filters,
	}

	result, err := fetch.Do(ctx, c.cfg.Retry, "paging.load_page",
		func(ctx context.Context) (domain.PageResult, error) {
			return c.fetcher.ListPosts(ctx, req)
		})

	c.mu.Lock()
	defer c.mu.Unlock()

	if mySeq != c.seq {
		// A newer load was issued while this one was in flight; applying
		// this response would overwrite newer data.
		slog.Debug("discarding stale page response", "page", target, "seq", mySeq)
		return nil
	}

	if err != nil {
		c.state = domain.LoadError
		c.lastErr = err
		c.lastKind = faults.Classify(err)
		c.failedPage = target
		slog.Warn("page load failed",
			"mode", c.cfg.Mode,
			"page", target,
			"kind", c.lastKind,
			"error", err,
		)
		return err
	}

	c.lastErr = nil
	c.lastKind = ""
	c.failedPage = 0
	c.totalCount = result.TotalCount
	c.page = target
	c.hasMore = result.HasNext()

	if c.cfg.Mode == ModeTraditional {
		c.results = result.Items
	} else {
		c.results = append(c.results, result.Items...)
	}

	if !c.hasMore && c.cfg.Mode != ModeTraditional {
		c.state = domain.LoadExhausted
	} else {
		c.state = domain.LoadSuccess
	}

	metrics.PagesLoadedTotal.WithLabelValues(string(c.cfg.Mode)).Inc()
	slog.Debug("page applied",
		"mode", c.cfg.Mode,
		"page", target,
		"items", len(result.Items),
		"total", result.TotalCount,
		"has_more", c.hasMore,
	)
	return nil
}

// Results returns a copy of the current result set.
func (c *Controller) Results() []domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Post, len(c.results))
	copy(out, c.results)
	return out
}

// State returns the current load state.
func (c *Controller) State() domain.LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasMore reports whether another page is available.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Page returns the last applied page number (0 before the first load).
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalCount returns the total item count reported by the last load.
func (c *Controller) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// TotalPages returns the page count for the configured page size.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller) totalPagesLocked() int {
	if c.cfg.PageSize <= 0 {
		return 0
	}
	return (c.totalCount + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// LastError returns the retained failure of the most recent failed load, or
// nil after a success.
func (c *Controller) LastError() (error, faults.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr, c.lastKind
}

// Progress returns the 1-based "showing X to Y of Z" bounds for the current
// page. Y never exceeds Z.
func (c *Controller) Progress() (start, end, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.totalCount == 0 || c.page == 0 {
		return 0, 0, c.totalCount
	}

	if c.cfg.Mode == ModeTraditional {
		start = (c.page-1)*c.cfg.PageSize + 1
	} else {
		// Append modes always show from the first item.
		start = 1
	}
	end = c.page * c.cfg.PageSize
	if end > c.totalCount {
		end = c.totalCount
	}
	return start, end, c.totalCount
}

// Window returns the visible page-number window for traditional mode.
func (c *Controller) Window() []PageItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageWindow(c.page, c.totalPagesLocked(), c.cfg.WindowWidth)
}
