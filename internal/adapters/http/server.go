package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// APIVersion is reported by GET /info.
const APIVersion = "0.1.0"

// Engine defines what the HTTP surface needs from the envswitch engine.
type Engine interface {
	Environments() []domain.Environment
	Lookup(name string) (domain.Environment, error)
	Switch(ctx context.Context, name string) (domain.RenameReport, error)
	Current(ctx context.Context) (*domain.ActivationRecord, error)
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine  Engine
	Version string
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithVersion sets the application version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Version: "dev",
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/environments", s.ListEnvironments)
	r.Get("/environments/{name}", s.GetEnvironment)
	r.Post("/environments/{name}/switch", s.SwitchEnvironment)
	r.Get("/current", s.GetCurrent)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "envswitch-http",
		"version":     s.Version,
		"api_version": APIVersion,
	})
}

// ListEnvironments handles GET /environments.
func (s *Server) ListEnvironments(w http.ResponseWriter, r *http.Request) {
	envs := s.Engine.Environments()
	if envs == nil {
		envs = []domain.Environment{}
	}
	s.writeJSON(w, http.StatusOK, envs)
}

// GetEnvironment handles GET /environments/{name}.
func (s *Server) GetEnvironment(w http.ResponseWriter, r *http.Request) {
	env, err := s.Engine.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, env)
}

// SwitchEnvironment handles POST /environments/{name}/switch.
// Partial rename failures are reported in the body with a 200.
func (s *Server) SwitchEnvironment(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Switch(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newReportResponse(report))
}

// GetCurrent handles GET /current.
func (s *Server) GetCurrent(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Engine.Current(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// ResultResponse is one rename in a switch response.
type ResultResponse struct {
	Slot    int    `json:"slot"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Planned bool   `json:"planned,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReportResponse is the body of a successful switch.
type ReportResponse struct {
	Environment string           `json:"environment"`
	Renamed     int              `json:"renamed"`
	Failed      int              `json:"failed"`
	Results     []ResultResponse `json:"results"`
}

func newReportResponse(report domain.RenameReport) ReportResponse {
	resp := ReportResponse{
		Environment: report.Environment,
		Renamed:     report.Succeeded(),
		Failed:      len(report.Failed()),
		Results:     make([]ResultResponse, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		item := ResultResponse{
			Slot:    res.Operation.Slot,
			Source:  res.Operation.Source,
			Target:  res.Operation.Target,
			Planned: res.Planned,
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEnvironmentNotFound), errors.Is(err, domain.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMissingName), errors.Is(err, domain.ErrInvalidEnvironment),
		errors.Is(err, domain.ErrInvalidWorkspaceName):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusConflict
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed to encode response", "error", err)
	}
}
