// Package web serves the scraper UI as server-rendered HTML.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scraper-ui/internal/view"
	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// Options configures the UI router.
type Options struct {
	// API is the backend client used by every view.
	API scraperapi.Client
	// ProxyURL, when set, exposes the backend under /api.
	ProxyURL string
	// CORSOrigins lists origins allowed to call /api.
	CORSOrigins []string
	// Location renders timestamps; nil means the local zone.
	Location *time.Location
}

type handler struct {
	api scraperapi.Client
	rd  *renderer
}

// NewRouter builds the UI routes: / (submission), /history and /page/{id}.
func NewRouter(opts Options) (http.Handler, error) {
	if opts.API == nil {
		return nil, eris.New("web: backend client is required")
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	rd, err := newRenderer(loc)
	if err != nil {
		return nil, err
	}
	h := &handler{api: opts.API, rd: rd}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Handle("/static/*", staticFiles())

	r.Get("/", h.submissionForm)
	r.Post("/", h.submit)
	r.Get("/history", h.history)
	r.Get("/page/{id}", h.detail)

	if opts.ProxyURL != "" {
		proxy, err := newAPIProxy(opts.ProxyURL, opts.CORSOrigins)
		if err != nil {
			return nil, err
		}
		r.Handle(APIPrefix+"/*", proxy)
	}

	return r, nil
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}

func (h *handler) submissionForm(w http.ResponseWriter, r *http.Request) {
	s := view.NewSubmission(h.api)
	h.rd.render(w, http.StatusOK, pageSubmission, s.State())
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	s := view.NewSubmission(h.api)
	s.SetURL(r.PostFormValue("url"))
	s.Submit(r.Context())

	st := s.State()
	status := http.StatusOK
	switch {
	case st.Err == view.MsgEnterURL:
		status = http.StatusBadRequest
	case st.Err != "":
		status = http.StatusBadGateway
	}
	h.rd.render(w, status, pageSubmission, st)
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	hv := view.NewHistory(h.api)

	query := r.URL.Query()
	if query.Has("query") {
		hv.SetQuery(query.Get("query"))
		hv.Search(r.Context())
	} else {
		hv.Mount(r.Context())
	}

	st := hv.State()
	status := http.StatusOK
	if st.Err != "" {
		status = http.StatusBadGateway
	}
	h.rd.render(w, status, pageHistory, st)
}

type detailData struct {
	State view.DetailState
	Mode  string
}

func (h *handler) detail(w http.ResponseWriter, r *http.Request) {
	d := view.NewDetail(h.api)
	d.Load(r.Context(), r.URL.EscapedPath())

	st := d.State()
	mode := st.Render()
	status := http.StatusOK
	switch mode {
	case view.RenderNotFound:
		status = http.StatusNotFound
	case view.RenderError:
		status = http.StatusBadGateway
	}
	h.rd.render(w, status, pageDetail, detailData{State: st, Mode: mode.String()})
}
