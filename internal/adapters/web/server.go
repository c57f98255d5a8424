package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/foxside/taggenie/internal/ports"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxRequestBody bounds POST /api/tags payloads.
const maxRequestBody = 64 << 10

// HealthResult is the /api/health payload.
type HealthResult struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Videos  bool   `json:"videos"` // video mining configured (API key present)
	Version string `json:"version,omitempty"`
}

// errorResult is the JSON body of every non-2xx API response.
type errorResult struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type ctxKey struct{}

// Options holds the server's optional collaborators.
type Options struct {
	Metrics       http.Handler // served at /metrics when non-nil
	Log           *slog.Logger
	VideosEnabled bool
	Version       string
}

// Server serves the tag API and the embedded form over HTTP.
type Server struct {
	svc      ports.TagService
	opts     Options
	log      *slog.Logger
	listener net.Listener
	httpSrv  *http.Server
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates an HTTP server for svc. Nothing listens until Start.
func NewServer(svc ports.TagService, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{svc: svc, opts: opts, log: log, started: time.Now()}
}

// Router builds the request router. Exposed for tests and embedding.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/tags", s.handleTagsQuery).Methods(http.MethodGet)
	api.HandleFunc("/tags", s.handleTagsJSON).Methods(http.MethodPost)

	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics).Methods(http.MethodGet)
	}

	static, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/").Handler(http.FileServerFS(static)).Methods(http.MethodGet)
	return r
}

// Start listens on addr (e.g. "127.0.0.1:8080"; port 0 picks a free one).
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.started = time.Now()
	s.httpSrv = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
	})
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// requestID tags every request with an ID (reusing a client-sent one) and
// logs its outcome.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		s.log.Debug("http request",
			"id", id, "method", r.Method, "path", r.URL.Path,
			"status", sw.status, "elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResult{
		Status:  "ok",
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Videos:  s.opts.VideosEnabled,
		Version: s.opts.Version,
	})
}

// handleTagsQuery serves GET /api/tags?title=&count=&hl=&gl=&scores=.
func (s *Server) handleTagsQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ports.TagRequest{
		Title:    q.Get("title"),
		Language: q.Get("hl"),
		Region:   q.Get("gl"),
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("count: %q is not a number", v))
			return
		}
		req.Count = n
	}
	if v := q.Get("scores"); v != "" {
		req.Scores, _ = strconv.ParseBool(v)
	}
	s.generate(w, r, req)
}

// handleTagsJSON serves POST /api/tags with a ports.TagRequest body.
func (s *Server) handleTagsJSON(w http.ResponseWriter, r *http.Request) {
	var req ports.TagRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	s.generate(w, r, req)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, req ports.TagRequest) {
	res, err := s.svc.Generate(r.Context(), req)
	switch {
	case errors.Is(err, ports.ErrEmptyTitle):
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Error("generate tags", "id", requestIDFrom(r.Context()), "err", err)
		s.writeError(w, r, http.StatusInternalServerError, errors.New("tag generation failed"))
		return
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, errorResult{Error: err.Error(), RequestID: requestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// statusWriter remembers the status code for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
