package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/ports"
	"github.com/aretw0/vigil/pkg/report"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Server exposes a Monitor as a JSON API.
type Server struct {
	Monitor ports.Monitor
	Reports *report.Manager
	Streams *StreamManager

	metrics     http.Handler
	corsOrigins []string
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithReports serves published reports under /reports.
func WithReports(m *report.Manager) Option {
	return func(s *Server) {
		s.Reports = m
	}
}

// WithStreams serves transition events under /events. Feed the manager
// through its Hooks on the Monitor.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetricsHandler mounts h (typically promhttp) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithCORSOrigins restricts allowed origins. Empty allows any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the monitor.
func NewHandler(monitor ports.Monitor, opts ...Option) http.Handler {
	s := &Server{
		Monitor: monitor,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/risks", s.GetRisks)
	r.Get("/metrics/snapshot", s.GetMetrics)
	r.Get("/bottlenecks", s.GetAllBottlenecks)

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", s.ListWorkflows)
		r.Post("/", s.RegisterWorkflow)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetWorkflow)
			r.Post("/status", s.UpdateWorkflowStatus)
			r.Get("/alerts", s.GetAlerts)
			r.Post("/alerts", s.AddAlert)
			r.Get("/bottlenecks", s.GetBottlenecks)
			r.Get("/prediction", s.GetPrediction)
			r.Post("/phases/{phase}/status", s.UpdatePhaseStatus)
		})
	})

	r.Route("/agents", func(r chi.Router) {
		r.Get("/", s.ListAgents)
		r.Post("/", s.RegisterAgent)
		r.Get("/{id}", s.GetAgent)
		r.Post("/{id}/status", s.UpdateAgentStatus)
	})

	if s.Reports != nil {
		r.Get("/reports", s.ListReports)
		r.Get("/reports/{id}", s.GetReport)
	}
	if s.Streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

type resultResponse struct {
	Result domain.Result `json:"result"`
}

type registerWorkflowRequest struct {
	ID string `json:"id"`
	domain.WorkflowSpec
}

type registerAgentRequest struct {
	ID string `json:"id"`
	domain.AgentSpec
}

type workflowStatusRequest struct {
	Status string `json:"status"`
	domain.WorkflowUpdate
}

type phaseStatusRequest struct {
	Status string `json:"status"`
	domain.PhaseUpdate
}

type agentStatusRequest struct {
	Status string `json:"status"`
	domain.AgentUpdate
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Monitor.HealthCheck(r.Context()))
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "vigil-http",
		"version": strings.TrimSpace(vigil.Version),
	})
}

// GetRisks handles the GET /risks request.
func (s *Server) GetRisks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, nonNil(s.Monitor.AssessRisks(r.Context())))
}

// GetMetrics handles the GET /metrics/snapshot request.
func (s *Server) GetMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Monitor.GetMetrics(r.Context()))
}

// GetAllBottlenecks handles the GET /bottlenecks request.
func (s *Server) GetAllBottlenecks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, nonNil(s.Monitor.CheckAllBottlenecks(r.Context())))
}

// ListWorkflows handles the GET /workflows request.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, nonNil(s.Monitor.GetAllWorkflows(r.Context())))
}

// RegisterWorkflow handles the POST /workflows request. A missing id is generated.
func (s *Server) RegisterWorkflow(w http.ResponseWriter, r *http.Request) {
	var body registerWorkflowRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.ID == "" {
		body.ID = uuid.New().String()
	}

	wf, err := s.Monitor.RegisterWorkflow(r.Context(), body.ID, body.WorkflowSpec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, wf)
}

// GetWorkflow handles the GET /workflows/{id} request.
func (s *Server) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wf, ok := s.Monitor.GetWorkflow(r.Context(), id)
	if !ok {
		s.notFound(w, "workflow", id)
		return
	}
	s.writeJSON(w, http.StatusOK, wf)
}

// UpdateWorkflowStatus handles the POST /workflows/{id}/status request.
func (s *Server) UpdateWorkflowStatus(w http.ResponseWriter, r *http.Request) {
	var body workflowStatusRequest
	if !s.decode(w, r, &body) {
		return
	}
	status, err := domain.ParseWorkflowStatus(body.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Monitor.UpdateWorkflowStatus(r.Context(), chi.URLParam(r, "id"), status, body.WorkflowUpdate)
	s.writeResult(w, res, err)
}

// UpdatePhaseStatus handles the POST /workflows/{id}/phases/{phase}/status request.
func (s *Server) UpdatePhaseStatus(w http.ResponseWriter, r *http.Request) {
	var body phaseStatusRequest
	if !s.decode(w, r, &body) {
		return
	}
	status, err := domain.ParsePhaseStatus(body.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Monitor.UpdatePhaseStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "phase"), status, body.PhaseUpdate)
	s.writeResult(w, res, err)
}

// GetAlerts handles the GET /workflows/{id}/alerts request.
func (s *Server) GetAlerts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	alerts, ok := s.Monitor.GetAlerts(r.Context(), id)
	if !ok {
		s.notFound(w, "workflow", id)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(alerts))
}

// AddAlert handles the POST /workflows/{id}/alerts request.
func (s *Server) AddAlert(w http.ResponseWriter, r *http.Request) {
	var alert domain.Alert
	if !s.decode(w, r, &alert) {
		return
	}
	res := s.Monitor.AddAlert(r.Context(), chi.URLParam(r, "id"), alert)
	s.writeResult(w, res, nil)
}

// GetBottlenecks handles the GET /workflows/{id}/bottlenecks request.
func (s *Server) GetBottlenecks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	alerts, ok := s.Monitor.CheckForBottlenecks(r.Context(), id)
	if !ok {
		s.notFound(w, "workflow", id)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(alerts))
}

// GetPrediction handles the GET /workflows/{id}/prediction request.
func (s *Server) GetPrediction(w http.ResponseWriter, r *http.Request) {
	p, err := s.Monitor.PredictDelivery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// ListAgents handles the GET /agents request.
func (s *Server) ListAgents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, nonNil(s.Monitor.GetAllAgents(r.Context())))
}

// RegisterAgent handles the POST /agents request.
func (s *Server) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	var body registerAgentRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.ID == "" {
		http.Error(w, "agent id is required", http.StatusBadRequest)
		return
	}
	a, err := s.Monitor.RegisterAgent(r.Context(), body.ID, body.AgentSpec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, a)
}

// GetAgent handles the GET /agents/{id} request.
func (s *Server) GetAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.Monitor.GetAgent(r.Context(), id)
	if !ok {
		s.notFound(w, "agent", id)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

// UpdateAgentStatus handles the POST /agents/{id}/status request.
func (s *Server) UpdateAgentStatus(w http.ResponseWriter, r *http.Request) {
	var body agentStatusRequest
	if !s.decode(w, r, &body) {
		return
	}
	status, err := domain.ParseAgentStatus(body.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.Monitor.UpdateAgentStatus(r.Context(), chi.URLParam(r, "id"), status, body.AgentUpdate)
	s.writeResult(w, res, err)
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Reports.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(ids))
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Reports.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeResult(w http.ResponseWriter, res domain.Result, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resultResponse{Result: res})
}

func (s *Server) notFound(w http.ResponseWriter, kind, id string) {
	http.Error(w, fmt.Sprintf("%s %q not found", kind, id), http.StatusNotFound)
}

// writeError maps domain sentinels to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDuplicateEntity):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrReportNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidPhase), errors.Is(err, domain.ErrInvalidID):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientHistory):
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), code)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
