package web

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// APIPrefix is the path under which the backend is exposed to browsers.
const APIPrefix = "/api"

// newAPIProxy forwards /api/* to the backend with the prefix removed, so
// /api/pages/ reaches <backend>/pages/.
func newAPIProxy(backendURL string, origins []string) (http.Handler, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, eris.Wrap(err, "web: parse backend url")
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, eris.Errorf("web: backend url %q must be absolute", backendURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			path := strings.TrimPrefix(pr.In.URL.Path, APIPrefix)
			if path == "" {
				path = "/"
			}
			pr.Out.URL.Path = path
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			zap.L().Warn("web: backend proxy failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"Backend unavailable"}`))
		},
	}

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		MaxAge:         300,
	})

	return c.Handler(proxy), nil
}
