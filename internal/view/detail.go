package view

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// RenderState is the mutually exclusive display mode of the detail view.
type RenderState int

const (
	RenderLoading RenderState = iota
	RenderError
	RenderNotFound
	RenderContent
)

func (r RenderState) String() string {
	switch r {
	case RenderLoading:
		return "loading"
	case RenderError:
		return "error"
	case RenderNotFound:
		return "not_found"
	case RenderContent:
		return "content"
	}
	return "unknown"
}

// DetailState is the state of the page detail view.
type DetailState struct {
	ID      model.PageID
	Loading bool
	Err     string
	Page    *model.Page
}

// Render picks the display mode: loading, then error, then not found, then
// content.
func (s DetailState) Render() RenderState {
	switch {
	case s.Loading:
		return RenderLoading
	case s.Err != "":
		return RenderError
	case s.Page == nil:
		return RenderNotFound
	default:
		return RenderContent
	}
}

// Detail shows one stored page.
type Detail struct {
	base[DetailState]
	api     PageGetter
	mounted bool
}

// NewDetail creates a detail view in the loading state.
func NewDetail(api PageGetter, opts ...Option[DetailState]) *Detail {
	d := &Detail{api: api}
	d.state.Loading = true
	d.apply(opts)
	return d
}

// State returns a copy of the current state.
func (d *Detail) State() DetailState {
	return d.snapshot()
}

// IDFromPath returns the last non-empty segment of an escaped navigable
// path, unescaped once. An escaped "/" stays inside the id.
func IDFromPath(path string) model.PageID {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := strings.TrimSpace(segments[i])
		if s == "" {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			s = u
		}
		return model.PageID(s)
	}
	return ""
}

// Load fetches the page named by path on first mount and whenever the id
// changes. Returns true if a fetch was issued.
func (d *Detail) Load(ctx context.Context, path string) bool {
	if !d.begin() {
		return false
	}
	defer d.end()

	id := IDFromPath(path)
	if d.mounted && id == d.State().ID {
		return false
	}
	d.mounted = true

	if id == "" {
		d.update(func(st *DetailState) {
			*st = DetailState{}
		})
		return false
	}

	d.update(func(st *DetailState) {
		st.ID = id
		st.Loading = true
		st.Err = ""
		st.Page = nil
	})
	defer d.update(func(st *DetailState) {
		st.Loading = false
	})

	page, err := d.api.GetPage(ctx, id)
	switch {
	case errors.Is(err, scraperapi.ErrNotFound):
		zap.L().Debug("view: page not found", zap.String("id", id.String()))
	case err != nil:
		zap.L().Warn("view: page fetch failed",
			zap.String("id", id.String()),
			zap.Error(err),
		)
		d.update(func(st *DetailState) {
			st.Err = MsgDetailFailed
		})
	default:
		d.update(func(st *DetailState) {
			st.Page = page
		})
	}
	return true
}
