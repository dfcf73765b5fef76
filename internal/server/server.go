// Package server exposes the dashboard over plain JSON-over-HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hydromap/internal/aggregator"
	"hydromap/internal/auth"
	"hydromap/internal/dataset"
	"hydromap/internal/export"
	"hydromap/internal/logger"
	"hydromap/internal/optimizer"
	"hydromap/internal/refresh"
	"hydromap/internal/types"
	"hydromap/internal/viewmodel"
)

type Server struct {
	src          dataset.Source
	assembler    *viewmodel.Assembler
	auth         *auth.Service
	poller       *refresh.Poller
	fetchTimeout time.Duration
	log          *logger.Logger
}

type Options struct {
	Source       dataset.Source
	Assembler    *viewmodel.Assembler
	Auth         *auth.Service
	Poller       *refresh.Poller
	FetchTimeout time.Duration
	Logger       *logger.Logger
}

func New(opts Options) *Server {
	return &Server{
		src:          opts.Source,
		assembler:    opts.Assembler,
		auth:         opts.Auth,
		poller:       opts.Poller,
		fetchTimeout: opts.FetchTimeout,
		log:          opts.Logger.Component("server"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/infrastructure", s.handleInfrastructure)
	mux.HandleFunc("GET /api/investments", s.handleInvestments)
	mux.HandleFunc("GET /api/performance", s.handlePerformance)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/optimizer", s.handleOptimizer)
	mux.HandleFunc("GET /api/metrics/live", s.handleLive)
	mux.HandleFunc("GET /api/export", s.handleExport)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)

	return s.logRequests(mux)
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLog := s.log.WithRequest(r)
		w.Header().Set("X-Request-ID", logger.RequestID(r))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		reqLog.WithField("status", rec.status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	})
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorBody{Success: false, Message: msg})
}

func (s *Server) fetchContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.fetchTimeout > 0 {
		return context.WithTimeout(r.Context(), s.fetchTimeout)
	}
	return context.WithCancel(r.Context())
}

// snapshot fetches every collection or writes a 502 and reports false.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (types.Snapshot, bool) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	snap, err := dataset.FetchSnapshot(ctx, s.src)
	if err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Warn("snapshot fetch failed")
		s.writeError(w, r, http.StatusBadGateway, "data source unavailable")
		return types.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "ok")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.assembler.Dashboard(snap))
}

func listOptions(r *http.Request) dataset.ListOptions {
	q := r.URL.Query()
	return dataset.ParseListOptions(q.Get("sort"), q.Get("limit"))
}

func (s *Server) handleInfrastructure(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	list, err := s.src.ListInfrastructure(ctx, listOptions(r))
	s.writeList(w, r, list, err)
}

func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	list, err := s.src.ListInvestments(ctx, listOptions(r))
	s.writeList(w, r, list, err)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	list, err := s.src.ListPerformance(ctx, listOptions(r))
	s.writeList(w, r, list, err)
}

func (s *Server) writeList(w http.ResponseWriter, r *http.Request, list any, err error) {
	if err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Warn("list failed")
		s.writeError(w, r, http.StatusBadGateway, "data source unavailable")
		return
	}
	s.writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.assembler.RegionalBreakdown(snap))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	assets, err := s.src.ListInfrastructure(ctx, dataset.ListOptions{})
	if err != nil {
		s.writeList(w, r, nil, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, aggregator.DeriveAlerts(assets))
}

func (s *Server) handleOptimizer(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("scenario")
	if key == "" {
		s.writeJSON(w, r, http.StatusOK, optimizer.Scenarios())
		return
	}
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	scenario, err := optimizer.Lookup(key, n)
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, scenario)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.poller == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "live metrics disabled")
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.poller.Latest())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="hydromap-dashboard.xlsx"`)
	if err := export.Write(w, s.assembler.Dashboard(snap)); err != nil {
		s.log.WithRequest(r).WithField("error", err.Error()).Error("export failed")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.auth.Login(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := s.auth.Signup(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}
