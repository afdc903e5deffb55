// Package api exposes the analysis pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness check with build info
//	POST /v1/analyze   UniMoG body → JSON analysis result
//	POST /v1/render    UniMoG body → DOT or SVG drawing of the graph
//	POST /v1/scan      UniMoG body → JSON local CARP index per marker
//
// Analysis options are query parameters: core, partition, splits, tree,
// residuals (booleans), top (number) and genomes (comma-separated filter).
// Scan takes depth (markers, default 500) and the quantile band lower and
// upper. Input errors map to 400 with a JSON body carrying the error code.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gi-bielefeld/carp/pkg/buildinfo"
	"github.com/gi-bielefeld/carp/pkg/carp"
	carperrors "github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/observability"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

// DefaultMaxBody caps request bodies. Genomes with 10^5 markers each fit
// comfortably.
const DefaultMaxBody = 64 << 20

// HeaderRequestID carries the per-request id in both directions.
const HeaderRequestID = "X-Request-ID"

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// NewServer creates a server backed by runner. A nil logger uses log.Default.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, maxBody: DefaultMaxBody}
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/render", s.handleRender)
		r.Post("/scan", s.handleScan)
	})
	return r
}

// =============================================================================
// Middleware
// =============================================================================

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", r.Header.Get(HeaderRequestID))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Analyze(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	ropts := pipeline.RenderOptions{Format: q.Get("format")}
	if ropts.Colors, err = queryBool(q.Get("colors")); err != nil {
		s.writeError(w, r, carperrors.Wrap(carperrors.ErrCodeInvalidInput, err, "query parameter colors"))
		return
	}

	out, _, err := s.runner.Render(r.Context(), opts, ropts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ropts.Format == pipeline.FormatDOT {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Write(out)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	sopts := pipeline.ScanOptions{Depth: pipeline.DefaultScanDepth}
	if v := q.Get("depth"); v != "" {
		if sopts.Depth, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, carperrors.Wrap(carperrors.ErrCodeInvalidInput, err, "query parameter depth"))
			return
		}
	}
	lower, upper := 0.0, 1.0
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"lower", &lower}, {"upper", &upper}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		if *p.dst, err = strconv.ParseFloat(v, 64); err != nil {
			s.writeError(w, r, carperrors.Wrap(carperrors.ErrCodeInvalidInput, err, "query parameter %s", p.name))
			return
		}
	}
	if lower < 0 || upper > 1 || lower > upper {
		s.writeError(w, r, carperrors.New(carperrors.ErrCodeInvalidInput, "invalid quantile band [%g, %g)", lower, upper))
		return
	}

	res, err := s.runner.Scan(r.Context(), opts, sopts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if lower > 0 || upper < 1 {
		res.Scores = carp.Percentile(res.Scores, lower, upper)
	}
	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, res)
}

// readOptions decodes the body and the shared query parameters.
func (s *Server) readOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()

	flags := []struct {
		name string
		dst  *bool
	}{
		{"core", &opts.Core},
		{"partition", &opts.Partition},
		{"splits", &opts.Splits},
		{"tree", &opts.Tree},
		{"residuals", &opts.Residuals},
		{"refresh", &opts.Refresh},
	}
	for _, f := range flags {
		v, err := queryBool(q.Get(f.name))
		if err != nil {
			return opts, carperrors.Wrap(carperrors.ErrCodeInvalidInput, err, "query parameter %s", f.name)
		}
		*f.dst = v
	}
	if top := q.Get("top"); top != "" {
		v, err := strconv.ParseFloat(top, 64)
		if err != nil {
			return opts, carperrors.Wrap(carperrors.ErrCodeInvalidInput, err, "query parameter top")
		}
		opts.Top = v
	}
	if g := q.Get("genomes"); g != "" {
		opts.Only = strings.Split(g, ",")
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return opts, err
	}
	opts.Input = body
	opts.Logger = s.logger.With("request_id", r.Header.Get(HeaderRequestID))
	return opts, nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := string(carperrors.GetCode(err))

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		code = string(carperrors.ErrCodeInvalidInput)
	case carperrors.IsInputError(err):
		status = http.StatusBadRequest
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = string(carperrors.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("request failed", "error", err, "request_id", r.Header.Get(HeaderRequestID))
	}

	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   carperrors.UserMessage(err),
		RequestID: r.Header.Get(HeaderRequestID),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
