package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// fakeBackend is a scriptable stand-in for the scraper REST API.
type fakeBackend struct {
	t *testing.T

	mu       sync.Mutex
	requests []*http.Request
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: make(map[string]func(http.ResponseWriter, *http.Request))}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

// on registers a handler for "METHOD /path".
func (fb *fakeBackend) on(route string, fn func(w http.ResponseWriter, r *http.Request)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = fn
}

// json registers a canned JSON response.
func (fb *fakeBackend) json(route string, status int, body string) {
	fb.on(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.requests = append(fb.requests, r.Clone(r.Context()))
	fn, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}
	fn(w, r)
}

// calls returns the recorded "METHOD /path?query" lines.
func (fb *fakeBackend) calls() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]string, 0, len(fb.requests))
	for _, r := range fb.requests {
		line := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			line += "?" + r.URL.RawQuery
		}
		out = append(out, line)
	}
	return out
}

func newClient(baseURL string) scraperapi.Client {
	return scraperapi.NewClient(baseURL)
}

func newTestRouter(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	h, err := NewRouter(Options{
		API:      newClient(backendURL),
		ProxyURL: backendURL,
		Location: time.UTC,
	})
	require.NoError(t, err)
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}
