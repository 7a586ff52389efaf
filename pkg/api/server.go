// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build information
//	POST /v1/layout         lay out a whole mindmap
//	POST /v1/layout/focus   re-center the subtree of one node
//
// Both layout routes take a LayoutRequest and answer with a LayoutResponse.
// Failures answer with an ErrorResponse whose code is one of the pkg/errors
// codes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/orbit/pkg/buildinfo"
	orbiterrors "github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/layout/circular"
	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// LayoutRequest is the body of both layout routes.
type LayoutRequest struct {
	Graph mindmap.Document `json:"graph"`

	// Positions are the current node positions. Focus mode needs at least the
	// selected node; other positioned nodes become obstacles.
	Positions mindmap.Positions `json:"positions,omitempty"`

	pipeline.Options
}

// LayoutResponse wraps a pipeline result.
type LayoutResponse struct {
	RequestID string `json:"request_id"`
	*pipeline.Result
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	RequestID string    `json:"request_id,omitempty"`
	Error     ErrorBody `json:"error"`
}

// ErrorBody carries the error code and message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server routes layout requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layout", s.handleLayout(pipeline.ModeFull))
	r.Post("/v1/layout/focus", s.handleLayout(pipeline.ModeFocus))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleLayout(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Params fields the body leaves out keep their defaults.
		params := circular.DefaultParams()
		req := LayoutRequest{Options: pipeline.Options{Params: &params}}
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeError(w, r, orbiterrors.ErrCodeInvalidFormat, "invalid request body: "+err.Error())
			return
		}

		g, err := mindmap.FromDocument(req.Graph)
		if err != nil {
			writeCodedError(w, r, err)
			return
		}

		opts := req.Options
		opts.Mode = mode
		opts.Logger = s.logger.With("request_id", RequestIDFrom(r.Context()))

		res, err := s.runner.Execute(r.Context(), g, req.Positions, opts)
		if err != nil {
			writeCodedError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, LayoutResponse{RequestID: RequestIDFrom(r.Context()), Result: res})
	}
}
