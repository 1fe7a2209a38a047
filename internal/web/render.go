package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scraper-ui/internal/model"
	"github.com/sells-group/scraper-ui/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageSubmission = "submission"
	pageHistory    = "history"
	pageDetail     = "detail"
)

// renderer holds one parsed template set per view.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(loc *time.Location) (*renderer, error) {
	funcs := template.FuncMap{
		"formatTime": func(ts model.Timestamp) string {
			return view.FormatTime(ts, loc)
		},
		"preview":       view.Preview,
		"paragraphs":    view.Paragraphs,
		"busyLabel":     func() string { return view.MsgScrapeProgress },
		"loadingLabel":  func() string { return view.MsgLoading },
		"noPagesLabel":  func() string { return view.MsgNoPages },
		"notFoundLabel": func() string { return view.MsgPageNotFound },
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageSubmission, pageHistory, pageDetail} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, eris.Wrapf(err, "web: parse %s template", name)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes the named page into a buffer so a template failure never
// produces a half-written response.
func (rd *renderer) render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := rd.pages[name]
	if !ok {
		zap.L().Error("web: unknown template", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		zap.L().Error("web: render template",
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func staticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
