package view

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// SubmissionState is the state of the URL submission view.
type SubmissionState struct {
	URL     string
	Loading bool
	Err     string
	Result  *model.Page
}

// Preview returns the truncated result content, or "" without a result.
func (s SubmissionState) Preview() string {
	if s.Result == nil {
		return ""
	}
	return Preview(s.Result.Content)
}

// Submission submits URLs for scraping.
type Submission struct {
	base[SubmissionState]
	api Scraper
}

// NewSubmission creates an idle submission view.
func NewSubmission(api Scraper, opts ...Option[SubmissionState]) *Submission {
	s := &Submission{api: api}
	s.apply(opts)
	return s
}

// SetURL replaces the input text.
func (s *Submission) SetURL(u string) {
	s.update(func(st *SubmissionState) {
		st.URL = u
	})
}

// State returns a copy of the current state.
func (s *Submission) State() SubmissionState {
	return s.snapshot()
}

// Submit scrapes the current URL. An empty URL fails validation without a
// backend call. Returns false, changing nothing, if a scrape is already in
// flight.
func (s *Submission) Submit(ctx context.Context) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	target := strings.TrimSpace(s.State().URL)
	if target == "" {
		s.update(func(st *SubmissionState) {
			st.Err = MsgEnterURL
			st.Result = nil
		})
		return true
	}

	s.update(func(st *SubmissionState) {
		st.Loading = true
		st.Err = ""
	})
	defer s.update(func(st *SubmissionState) {
		st.Loading = false
	})

	page, err := s.api.Scrape(ctx, target)
	if err != nil {
		zap.L().Warn("view: scrape failed",
			zap.String("url", target),
			zap.Error(err),
		)
		msg := MsgScrapeFailed
		if detail, ok := scraperapi.Detail(err); ok {
			msg = detail
		}
		s.update(func(st *SubmissionState) {
			st.Result = nil
			st.Err = msg
		})
		return true
	}

	s.update(func(st *SubmissionState) {
		st.Result = page
		st.Err = ""
	})
	return true
}
