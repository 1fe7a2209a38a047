// Package scraperapi provides a client for the scraper backend REST API.
package scraperapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scraper-ui/internal/model"
)

// ErrNotFound is returned by GetPage when the backend has no such page.
var ErrNotFound = errors.New("scraperapi: page not found")

// Client defines the backend operations the UI relies on.
type Client interface {
	// Scrape asks the backend to scrape targetURL and returns the stored page.
	Scrape(ctx context.Context, targetURL string) (*model.Page, error)
	// ListPages returns stored pages in backend order.
	ListPages(ctx context.Context, opts ...ListOption) ([]model.PageSummary, error)
	// Search returns pages whose title or content matches query.
	Search(ctx context.Context, query string) ([]model.PageSummary, error)
	// GetPage returns one page with its full content.
	GetPage(ctx context.Context, id model.PageID) (*model.Page, error)
}

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	// Detail is the human-readable message from the response body, if any.
	Detail string
	Body   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scraperapi: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("scraperapi: status %d: %s", e.StatusCode, e.Body)
}

// Detail extracts the backend-supplied message from err, if it carries one.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// ListOption configures a ListPages request.
type ListOption func(*listOpts)

type listOpts struct {
	skip  int
	limit int
}

// WithSkip skips the first n pages.
func WithSkip(n int) ListOption {
	return func(o *listOpts) {
		o.skip = n
	}
}

// WithLimit caps the number of pages returned.
func WithLimit(n int) ListOption {
	return func(o *listOpts) {
		o.limit = n
	}
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout bounds each request. Zero means no client-side limit. A client
// passed through WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewClient creates a backend client rooted at baseURL (e.g. "http://backend:8000"
// or "https://ui.example.com/api").
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    defaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = defaultHTTPClient()
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// do executes req once and returns the body and status code.
func (c *httpClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, eris.Wrap(err, "scraperapi: read response body")
	}
	return body, resp.StatusCode, nil
}

// apiError builds an APIError, pulling "detail" from a JSON error body.
func apiError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Body: strings.TrimSpace(string(body))}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		// Validation failures carry a list here; only plain strings are shown.
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			e.Detail = s
		}
	}
	return e
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func (c *httpClient) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, eris.Wrap(err, "scraperapi: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.do(req)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "scraperapi: GET %s", path)
	}
	return body, statusCode, nil
}

func (c *httpClient) Scrape(ctx context.Context, targetURL string) (*model.Page, error) {
	payload, err := json.Marshal(map[string]string{"url": targetURL})
	if err != nil {
		return nil, eris.Wrap(err, "scraperapi: marshal scrape request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape/", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "scraperapi: create scrape request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scraperapi: scrape request failed")
	}
	if !isSuccess(statusCode) {
		return nil, apiError(statusCode, body)
	}

	var page model.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, eris.Wrap(err, "scraperapi: unmarshal scrape response")
	}
	return &page, nil
}

func (c *httpClient) ListPages(ctx context.Context, opts ...ListOption) ([]model.PageSummary, error) {
	lo := &listOpts{}
	for _, opt := range opts {
		opt(lo)
	}

	query := url.Values{}
	if lo.skip > 0 {
		query.Set("skip", strconv.Itoa(lo.skip))
	}
	if lo.limit > 0 {
		query.Set("limit", strconv.Itoa(lo.limit))
	}

	body, statusCode, err := c.get(ctx, "/pages/", query)
	if err != nil {
		return nil, err
	}
	if !isSuccess(statusCode) {
		return nil, apiError(statusCode, body)
	}

	return decodeSummaries(body, "list")
}

func (c *httpClient) Search(ctx context.Context, query string) ([]model.PageSummary, error) {
	body, statusCode, err := c.get(ctx, "/search/", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}
	if !isSuccess(statusCode) {
		return nil, apiError(statusCode, body)
	}

	return decodeSummaries(body, "search")
}

func (c *httpClient) GetPage(ctx context.Context, id model.PageID) (*model.Page, error) {
	body, statusCode, err := c.get(ctx, "/pages/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		return nil, eris.Wrapf(ErrNotFound, "scraperapi: page %s", id)
	}
	if !isSuccess(statusCode) {
		return nil, apiError(statusCode, body)
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, eris.Wrapf(ErrNotFound, "scraperapi: page %s", id)
	}

	var page model.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, eris.Wrap(err, "scraperapi: unmarshal page response")
	}
	return &page, nil
}

func decodeSummaries(body []byte, op string) ([]model.PageSummary, error) {
	var pages []model.PageSummary
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, eris.Wrapf(err, "scraperapi: unmarshal %s response", op)
	}
	if pages == nil {
		pages = []model.PageSummary{}
	}
	return pages, nil
}
