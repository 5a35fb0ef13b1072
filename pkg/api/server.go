package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/refs"
	"github.com/cuemby/hutch/pkg/runner"
	"github.com/cuemby/hutch/pkg/store"
	"github.com/cuemby/hutch/pkg/streamlog"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Server exposes a running database over HTTP: object and ref reads,
// event emission into the runner, and the stream log. Emits are
// serialized with a mutex since the runner is single-threaded.
type Server struct {
	runner *runner.Runner
	store  store.Store
	refs   refs.Refs
	stream *streamlog.Log
	router chi.Router
	logger zerolog.Logger

	emitMu sync.Mutex
}

// NewServer wires the routes for the given database.
func NewServer(run *runner.Runner, st store.Store, rf refs.Refs, stream *streamlog.Log) *Server {
	s := &Server{
		runner: run,
		store:  st,
		refs:   rf,
		stream: stream,
		logger: log.WithComponent("api"),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/objects/{hash}", s.handleGetObject)
		r.Get("/refs", s.handleListRefs)
		r.Get("/refs/*", s.handleGetRef)
		r.Post("/events", s.handlePostEvent)
		r.Get("/log", s.handleGetLog)
		r.Get("/pending", s.handleGetPending)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router = r
	return s
}

// Handler returns the server's HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("API server listening")
	return server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetObject(w http.ResponseWriter, r *http.Request) {
	hash := types.Hash(chi.URLParam(r, "hash"))

	value, ok, err := s.store.Get(hash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("object not found: %s", hash))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hash":  hash,
		"value": value,
	})
}

func (s *Server) handleListRefs(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	names, err := s.refs.List(prefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prefix": prefix,
		"names":  names,
	})
}

func (s *Server) handleGetRef(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	hash, ok, err := s.refs.Get(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("ref not found: %s", name))
		return
	}

	value, found, err := s.store.Get(hash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := map[string]any{
		"name": name,
		"hash": hash,
	}
	if found {
		resp["value"] = value
	}
	writeJSON(w, http.StatusOK, resp)
}

// emitRequest is the POST /v1/events body.
type emitRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req emitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	s.emitMu.Lock()
	before := s.stream.Len()
	err := s.runner.Emit(types.NewEvent(req.Type, mapValue(req.Data)))
	entries := s.stream.Sample()
	pending := len(s.runner.Pending())
	s.emitMu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Return the slice of the log this emit produced
	writeJSON(w, http.StatusAccepted, map[string]any{
		"type":    req.Type,
		"log":     entries[before:],
		"pending": pending,
	})
}

func mapValue(data map[string]any) types.Value {
	if data == nil {
		return nil
	}
	return data
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	entries := s.stream.Sample()
	if entries == nil {
		entries = []types.LogEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level":   s.stream.Level().String(),
		"entries": entries,
	})
}

func (s *Server) handleGetPending(w http.ResponseWriter, r *http.Request) {
	pending := s.runner.Pending()
	out := make([]map[string]any, 0, len(pending))
	for _, ev := range pending {
		out = append(out, map[string]any{"type": ev.Type, "data": ev.Data})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
