// Package server exposes the analysis pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness probe
//	POST /v1/analyze         analyze a blueprint
//	GET  /v1/reports         list stored reports, newest first
//	GET  /v1/reports/{id}    fetch one stored report
//
// The analyze endpoint accepts either a raw exchange string (any content
// type other than JSON) or the JSON body {"blueprint": "..."}. Unknown JSON
// fields are rejected, so callers cannot make the server download URLs or
// skip the cache. The query parameters format, order, direction_encoding and
// save select the remaining options. The response is the artifact for the
// single requested format, JSON by default.
//
// Errors are returned as {"error": {"code": "...", "message": "..."}} with a
// status derived from the error code.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wallcheck/pkg/buildinfo"
	"github.com/matzehuels/wallcheck/pkg/entity"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/pipeline"
	"github.com/matzehuels/wallcheck/pkg/store"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = wcerrors.MaxBlueprintLength + 4096

// Config configures a Server.
type Config struct {
	Runner  *pipeline.Runner
	Catalog *entity.Catalog
	Logger  *log.Logger

	// Defaults applied before query overrides.
	Order      string
	Directions string

	// MaxArea caps the bounding extent of analyzed blueprints. Zero means
	// reach.DefaultMaxArea.
	MaxArea int

	// Timeout bounds each request. Zero means 30s.
	Timeout time.Duration
}

// analyzeRequest is the JSON body of POST /v1/analyze.
type analyzeRequest struct {
	Blueprint string `json:"blueprint"`
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
}

// New creates a server. The runner is required.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errors.New("server: nil runner")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Server{cfg: cfg, logger: cfg.Logger.WithPrefix("http")}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.analyzeOptions(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Report-Id", res.Report.ID)
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.ReportHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) analyzeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Order:      s.cfg.Order,
		Directions: s.cfg.Directions,
		MaxArea:    s.cfg.MaxArea,
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return opts, wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "read body")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req analyzeRequest
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return opts, wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "decode request")
		}
		opts.Blueprint = strings.TrimSpace(req.Blueprint)
	} else {
		opts.Blueprint = strings.TrimSpace(string(body))
	}

	q := r.URL.Query()
	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	}
	if v := q.Get("order"); v != "" {
		opts.Order = v
	}
	if v := q.Get("direction_encoding"); v != "" {
		opts.Directions = v
	}
	if v := q.Get("save"); v != "" {
		save, err := strconv.ParseBool(v)
		if err != nil {
			return opts, wcerrors.Wrap(wcerrors.ErrCodeInvalidInput, err, "invalid save flag")
		}
		opts.Save = save
	}

	switch len(opts.Formats) {
	case 0:
		opts.Formats = []string{pipeline.FormatJSON}
	case 1:
	default:
		return opts, wcerrors.New(wcerrors.ErrCodeInvalidFormat, "exactly one format per request")
	}

	opts.Catalog = s.cfg.Catalog
	opts.Logger = s.logger
	return opts, nil
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, wcerrors.New(wcerrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	reports, err := s.cfg.Runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := wcerrors.ValidateReportID(id); err != nil {
		s.writeError(w, err)
		return
	}

	rep, err := s.cfg.Runner.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, wcerrors.Wrap(wcerrors.ErrCodeNotFound, err, "report %s", id))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type errorBody struct {
	Error struct {
		Code    wcerrors.Code `json:"code"`
		Message string        `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := wcerrors.HTTPStatus(err)
	var body errorBody
	body.Error.Code = wcerrors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = wcerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		body.Error.Message = http.StatusText(status)
	} else {
		body.Error.Message = wcerrors.UserMessage(err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatYAML:
		return "application/yaml"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
