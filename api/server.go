// Package api - thin, deterministic HTTP layer.
// The API is only responsible for input ingestion, engine orchestration, and
// output serialization. It never performs cost logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chaincost/adapters/storage"
	"chaincost/internal/errors"
	"chaincost/internal/logging"
)

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	store   storage.Store
}

// NewServer creates an API server. store may be nil to disable the
// /scenarios endpoints.
func NewServer(version string, handler *Handler, store storage.Store) *Server {
	s := &Server{
		handler: handler,
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	s.mux.HandleFunc("POST /optimize", s.handleOptimize)
	s.mux.HandleFunc("POST /simulate", s.handleSimulate)
	s.mux.HandleFunc("POST /sensitivity", s.handleSensitivity)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)

	if s.store != nil {
		s.mux.HandleFunc("POST /scenarios", s.handleSaveScenario)
		s.mux.HandleFunc("GET /scenarios", s.handleListScenarios)
		s.mux.HandleFunc("GET /scenarios/{id}", s.handleGetScenario)
		s.mux.HandleFunc("DELETE /scenarios/{id}", s.handleDeleteScenario)
	}
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	result, err := s.handler.evaluate(r.Context(), &req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, &EvaluateResponse{
		Result:   result,
		Metadata: s.metadata(start, req.Network.Seed),
	}, http.StatusOK)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	result, err := s.handler.optimize(r.Context(), &req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, &OptimizeResponse{
		Result:   result,
		Metadata: s.metadata(start, req.Network.Seed),
	}, http.StatusOK)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := s.handler.simulate(r.Context(), &req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, &SimulateResponse{
		Summary:  summary,
		Metadata: s.metadata(start, req.Network.Seed),
	}, http.StatusOK)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	entries, err := s.handler.sensitivity(r.Context(), &req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, &SensitivityResponse{
		Entries:  entries,
		Metadata: s.metadata(start, req.Network.Seed),
	}, http.StatusOK)
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var sc storage.StoredScenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), &sc); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, &sc, http.StatusCreated)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.store.List(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, scenarios, http.StatusOK)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, sc, http.StatusOK)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.version}, http.StatusOK)
}

func (s *Server) metadata(start time.Time, seed int64) *Metadata {
	return &Metadata{
		Version:    s.version,
		DurationMs: time.Since(start).Milliseconds(),
		Seed:       seed,
	}
}

// writeEngineError maps domain error types onto HTTP statuses
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.TypeInternal)
	if e, ok := err.(*errors.Error); ok {
		code = string(e.Type)
		switch e.Type {
		case errors.TypeInput, errors.TypeReference, errors.TypeParsing:
			status = http.StatusBadRequest
		case errors.TypeNotFound:
			status = http.StatusNotFound
		}
	}
	s.writeError(w, code, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, &ErrorResponse{Code: code, Message: message}, status)
}
