// Package inspect serves the last generation result over HTTP.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/logger"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// Server is the route inspector.
type Server struct {
	gen     *generator.Generator
	log     *logger.Logger
	metrics *Metrics
	router  chi.Router
	server  *http.Server
}

// NewServer creates an inspector for gen.
func NewServer(gen *generator.Generator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		gen:     gen,
		log:     log,
		metrics: NewMetrics(),
		router:  chi.NewRouter(),
	}
	if res, err := gen.Last(); res != nil || err != nil {
		s.metrics.Observe(res, err)
	}
	gen.OnRun(s.metrics.Observe)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/routes", s.handleResult)
		r.Get("/tree", s.handleTree)
		r.Get("/map", s.handleMap)
		r.Get("/path", s.handlePath)
		r.Post("/generate", s.handleGenerate)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen serves on addr until ctx is done, then shuts down gracefully.
// ready, when non-nil, receives the base URL once the listener is bound.
func (s *Server) Listen(ctx context.Context, addr string, ready func(baseURL string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:           s,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	baseURL := "http://" + ln.Addr().String()
	s.log.Info("inspector running at %s", baseURL)
	if ready != nil {
		ready(baseURL)
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown gracefully: %w", err)
	}
	return nil
}

func (s *Server) last(w http.ResponseWriter) (*generator.Result, bool) {
	res, err := s.gen.Last()
	if res == nil {
		msg := "no generation has completed yet"
		if err != nil {
			msg = err.Error()
		}
		writeError(w, http.StatusServiceUnavailable, msg)
		return nil, false
	}
	return res, true
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.last(w); ok {
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.last(w); ok {
		writeJSON(w, http.StatusOK, res.Tree)
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.last(w); ok {
		writeJSON(w, http.StatusOK, res.RouteMap)
	}
}

// handlePath builds a URL. Parameters are passed as param.<name>, query
// values as query.<name>.
//
//	GET /api/path?pattern=/posts/:id&param.id=7&query.tab=comments
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pattern := q.Get("pattern")
	if pattern == "" {
		writeError(w, http.StatusBadRequest, "pattern is required")
		return
	}

	params := make(map[string]string)
	query := url.Values{}
	for key, values := range q {
		switch {
		case strings.HasPrefix(key, "param."):
			params[strings.TrimPrefix(key, "param.")] = values[0]
		case strings.HasPrefix(key, "query."):
			query[strings.TrimPrefix(key, "query.")] = values
		}
	}

	path, err := routes.BuildPath(pattern, params, query, s.gen.Table())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	res, err := s.gen.Run(r.Context())
	switch {
	case errors.Is(err, generator.ErrAlreadyRunning):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	res, err := s.gen.Last()

	type row struct {
		Depth   int
		Pattern string
		ID      string
		Payload string
	}
	var rows []row
	if res != nil {
		routes.Walk(res.Tree, func(n *routes.Node, depth int) {
			rows = append(rows, row{Depth: depth, Pattern: n.Pattern, ID: n.ID, Payload: n.Payload})
		})
	}

	data := map[string]any{
		"Result": res,
		"Error":  err,
		"Rows":   rows,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.Error("failed to render inspector: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"indent": func(depth int) string { return strings.Repeat("  ", depth*2) },
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>typedroutes</title>
<style>
body { font-family: ui-monospace, monospace; margin: 2rem; }
td { padding: 0.2rem 1rem 0.2rem 0; }
.muted { color: #888; }
.error { color: #c00; }
</style>
</head>
<body>
<h1>typedroutes</h1>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
{{- with .Result}}
{{- if .DegradedReason}}
<p class="error">degraded: {{.DegradedReason}}</p>
{{- end}}
<p class="muted">{{len .Entries}} routes, {{len .Classification.Static}} static, {{len .Classification.Dynamic}} dynamic</p>
{{- else}}
<p class="muted">no generation has completed yet</p>
{{- end}}
<table>
<tr><th align="left">path</th><th align="left">id</th><th align="left">component</th></tr>
{{- range .Rows}}
<tr><td>{{indent .Depth}}{{.Pattern}}</td><td class="muted">{{.ID}}</td><td>{{.Payload}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))
