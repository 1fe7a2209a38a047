package view

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// --- Backend Mock ---

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Scrape(ctx context.Context, targetURL string) (*model.Page, error) {
	args := m.Called(ctx, targetURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page), args.Error(1)
}

func (m *mockBackend) ListPages(ctx context.Context, opts ...scraperapi.ListOption) ([]model.PageSummary, error) {
	args := m.Called(ctx, len(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PageSummary), args.Error(1)
}

func (m *mockBackend) Search(ctx context.Context, query string) ([]model.PageSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PageSummary), args.Error(1)
}

func (m *mockBackend) GetPage(ctx context.Context, id model.PageID) (*model.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page), args.Error(1)
}

var (
	_ Scraper    = (*mockBackend)(nil)
	_ PageLister = (*mockBackend)(nil)
	_ PageGetter = (*mockBackend)(nil)
)

// recorder collects observed states.
type recorder[S any] struct {
	states []S
}

func (r *recorder[S]) observe(s S) {
	r.states = append(r.states, s)
}
