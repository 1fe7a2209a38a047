// Package view holds the state machines behind the three UI views:
// URL submission, scrape history with search, and page detail.
//
// A view instance lives for one mount: one HTTP request in the web UI or one
// command invocation in the CLI. Every backend call is bracketed by the
// loading flag, which a deferred cleanup clears on every exit path. Calls
// issued while another call on the same instance is in flight are rejected.
package view

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// User-facing messages.
const (
	MsgEnterURL       = "Please enter a URL"
	MsgScrapeFailed   = "Failed to scrape the URL. Please try again."
	MsgListFailed     = "Failed to fetch scraped pages"
	MsgSearchFailed   = "Failed to search pages"
	MsgDetailFailed   = "Failed to fetch page details"
	MsgNoPages        = "No pages found. Try scraping some URLs first."
	MsgPageNotFound   = "Page not found"
	MsgLoading        = "Loading..."
	MsgScrapeProgress = "Scraping..."
)

// Scraper triggers a backend scrape.
type Scraper interface {
	Scrape(ctx context.Context, targetURL string) (*model.Page, error)
}

// PageLister lists and searches stored pages.
type PageLister interface {
	ListPages(ctx context.Context, opts ...scraperapi.ListOption) ([]model.PageSummary, error)
	Search(ctx context.Context, query string) ([]model.PageSummary, error)
}

// PageGetter fetches a single stored page.
type PageGetter interface {
	GetPage(ctx context.Context, id model.PageID) (*model.Page, error)
}

// Option configures a view.
type Option[S any] func(*base[S])

// WithObserver registers fn to receive a copy of the state after every
// transition. fn runs on the goroutine that caused the transition.
func WithObserver[S any](fn func(S)) Option[S] {
	return func(b *base[S]) {
		b.observe = fn
	}
}

// base carries the state, observer and in-flight guard shared by all views.
type base[S any] struct {
	mu       sync.Mutex
	state    S
	inflight atomic.Bool
	observe  func(S)
}

func (b *base[S]) apply(opts []Option[S]) {
	for _, opt := range opts {
		opt(b)
	}
}

func (b *base[S]) update(fn func(*S)) {
	b.mu.Lock()
	fn(&b.state)
	snapshot := b.state
	b.mu.Unlock()

	if b.observe != nil {
		b.observe(snapshot)
	}
}

func (b *base[S]) snapshot() S {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// begin claims the instance for one backend call.
func (b *base[S]) begin() bool {
	return b.inflight.CompareAndSwap(false, true)
}

func (b *base[S]) end() {
	b.inflight.Store(false)
}

// Busy reports whether a backend call is in flight.
func (b *base[S]) Busy() bool {
	return b.inflight.Load()
}
