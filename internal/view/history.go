package view

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// HistoryState is the state of the history view.
type HistoryState struct {
	Query   string
	Loading bool
	Err     string
	Pages   []model.PageSummary
}

// Empty reports whether the settled view has nothing to list.
func (s HistoryState) Empty() bool {
	return !s.Loading && s.Err == "" && len(s.Pages) == 0
}

// History lists stored pages and searches them.
type History struct {
	base[HistoryState]
	api      PageLister
	listOpts []scraperapi.ListOption
}

// NewHistory creates a history view. It starts in the loading state because
// the list is fetched as soon as the view mounts.
func NewHistory(api PageLister, opts ...Option[HistoryState]) *History {
	h := &History{api: api}
	h.state.Loading = true
	h.apply(opts)
	return h
}

// WithListOptions passes paging options to every full-list fetch.
func (h *History) WithListOptions(opts ...scraperapi.ListOption) *History {
	h.listOpts = append(h.listOpts, opts...)
	return h
}

// State returns a copy of the current state.
func (h *History) State() HistoryState {
	return h.snapshot()
}

// SetQuery replaces the search text.
func (h *History) SetQuery(q string) {
	h.update(func(st *HistoryState) {
		st.Query = q
	})
}

// Mount fetches the full page list. Returns false if a fetch is in flight.
func (h *History) Mount(ctx context.Context) bool {
	if !h.begin() {
		return false
	}
	defer h.end()

	h.fetchAll(ctx)
	return true
}

// Search fetches results for the current query, or the full list when the
// trimmed query is empty. Returns false if a fetch is in flight.
func (h *History) Search(ctx context.Context) bool {
	if !h.begin() {
		return false
	}
	defer h.end()

	query := h.State().Query
	if strings.TrimSpace(query) == "" {
		h.fetchAll(ctx)
		return true
	}

	h.run(ctx, MsgSearchFailed, func(ctx context.Context) ([]model.PageSummary, error) {
		return h.api.Search(ctx, query)
	})
	return true
}

func (h *History) fetchAll(ctx context.Context) {
	h.run(ctx, MsgListFailed, func(ctx context.Context) ([]model.PageSummary, error) {
		return h.api.ListPages(ctx, h.listOpts...)
	})
}

// run performs one fetch and replaces the page list with its result.
func (h *History) run(ctx context.Context, failMsg string, fetch func(context.Context) ([]model.PageSummary, error)) {
	h.update(func(st *HistoryState) {
		st.Loading = true
		st.Err = ""
	})
	defer h.update(func(st *HistoryState) {
		st.Loading = false
	})

	pages, err := fetch(ctx)
	if err != nil {
		zap.L().Warn("view: history fetch failed",
			zap.String("query", h.State().Query),
			zap.Error(err),
		)
		h.update(func(st *HistoryState) {
			st.Pages = nil
			st.Err = failMsg
		})
		return
	}

	h.update(func(st *HistoryState) {
		st.Pages = pages
	})
}
