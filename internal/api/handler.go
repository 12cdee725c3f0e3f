// Package api provides an HTTP API for the checklist.
// It exposes REST endpoints for evaluation and configuration and SSE for event streaming.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/requisite/internal/events"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/metrics"
	"github.com/zjrosen/requisite/internal/presentation"
	appreq "github.com/zjrosen/requisite/internal/requirement/application"
	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/state"
	"github.com/zjrosen/requisite/internal/tracing"
)

// Checklist is the application service the handler exposes.
type Checklist interface {
	Evaluate(ctx context.Context) (*requirement.Report, error)
	NextUnresolved(ctx context.Context) (requirement.Requirement, bool, error)
	Get(id string) (requirement.Requirement, error)
	List() []requirement.Requirement
	Groups() []*requirement.Group
	GroupOf(r requirement.Requirement) (*requirement.Group, bool)
	Form(id string) (*requirement.Form, error)
	Configure(ctx context.Context, id string, values requirement.Values) (requirement.ConfigurationResult, error)
	Preview(ctx context.Context, id string, values requirement.Values) (appreq.Preview, error)
	History(ctx context.Context, id string) ([]state.Submission, error)
	Settings(ctx context.Context) (map[string]string, error)
	Capabilities(ctx context.Context) ([]string, error)
	Reload(ctx context.Context) error
	Events() events.Subscriber
}

var _ Checklist = (*appreq.ChecklistService)(nil)

// heartbeatInterval keeps idle SSE connections open through proxies.
const heartbeatInterval = 30 * time.Second

// Handler provides HTTP endpoints for checklist operations.
type Handler struct {
	checklist Checklist
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	heartbeat time.Duration
}

// HandlerConfig configures the API handler.
type HandlerConfig struct {
	// Checklist is the service behind every endpoint (required).
	Checklist Checklist
	// Metrics is served on /metrics when set.
	Metrics *metrics.Metrics
	// Tracer creates a span per request when set.
	Tracer trace.Tracer
}

// NewHandler creates a new API handler wrapping the given checklist.
func NewHandler(c Checklist) *Handler {
	return NewHandlerWithConfig(HandlerConfig{Checklist: c})
}

// NewHandlerWithConfig creates a new API handler with full configuration.
func NewHandlerWithConfig(cfg HandlerConfig) *Handler {
	return &Handler{
		checklist: cfg.Checklist,
		metrics:   cfg.Metrics,
		tracer:    cfg.Tracer,
		heartbeat: heartbeatInterval,
	}
}

// Routes returns an http.Handler with all API routes registered.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware(h.tracer))
	r.Use(requestLogger)
	h.Register(r)
	return r
}

// Register mounts the checklist endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Health)

	r.Get("/requirements", h.List)
	r.Get("/requirements/{id}", h.Get)
	r.Get("/requirements/{id}/form", h.GetForm)
	r.Post("/requirements/{id}/configuration", h.Configure)
	r.Get("/requirements/{id}/history", h.History)

	r.Get("/next", h.Next)
	r.Get("/status", h.Status)
	r.Get("/groups", h.ListGroups)
	r.Get("/history", h.History)
	r.Get("/state", h.State)
	r.Post("/reload", h.Reload)

	r.Get("/events", h.StreamEvents)

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
}

// === Request/Response Types ===

// ConfigureRequest is the request body for configuring a requirement.
type ConfigureRequest struct {
	// Values are the submitted form values keyed by field key.
	Values map[string]string `json:"values"`
	// DryRun validates and previews without storing anything.
	DryRun bool `json:"dry_run,omitempty"`
}

// ConfigureResponse is the response body for an accepted configuration.
type ConfigureResponse struct {
	RequirementID string            `json:"requirement_id"`
	Values        map[string]string `json:"values"`
	Completed     bool              `json:"completed"`
}

// ValidationErrorResponse is the response body for a rejected configuration.
type ValidationErrorResponse struct {
	Error         string                   `json:"error"`
	Code          string                   `json:"code"`
	RequirementID string                   `json:"requirement_id"`
	Fields        []requirement.FieldError `json:"fields"`
}

// StatusResponse is the response body for the checklist summary.
type StatusResponse struct {
	FullyResolved bool                `json:"fully_resolved"`
	Next          string              `json:"next,omitempty"`
	Summary       requirement.Summary `json:"summary"`
}

// StateResponse is the response body for the current environment.
type StateResponse struct {
	Settings     map[string]string `json:"settings"`
	Capabilities []string          `json:"capabilities"`
}

// HealthResponse is the response body for the health check.
type HealthResponse struct {
	Status       string `json:"status"`
	Requirements int    `json:"requirements"`
}

// ErrorResponse is the response body for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// === Handlers ===

// Health reports that the server is up and how many requirements are loaded.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Requirements: len(h.checklist.List())})
}

// List evaluates the checklist.
// GET /requirements
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rep, err := h.checklist.Evaluate(r.Context())
	if err != nil {
		h.writeDomainError(w, err, "evaluate_failed", "Failed to evaluate checklist")
		return
	}
	h.writeJSON(w, http.StatusOK, presentation.FromDomainReport(rep, h.checklist))
}

// Get returns one requirement with its evaluated state.
// GET /requirements/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := h.checklist.Get(id)
	if err != nil {
		h.writeDomainError(w, err, "get_failed", "Failed to get requirement")
		return
	}

	rep, err := h.checklist.Evaluate(r.Context())
	if err != nil {
		h.writeDomainError(w, err, "evaluate_failed", "Failed to evaluate checklist")
		return
	}

	dto := presentation.FromDomainRequirement(req, h.checklist)
	dto.State = presentation.StateNotApplicable
	if st, ok := rep.Status(id); ok {
		dto = presentation.FromDomainStatus(st, h.checklist)
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// GetForm returns the configuration form with currently stored values.
// GET /requirements/{id}/form
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := h.checklist.Get(id)
	if err != nil {
		h.writeDomainError(w, err, "get_failed", "Failed to get requirement")
		return
	}
	form, err := h.checklist.Form(id)
	if err != nil {
		h.writeDomainError(w, err, "form_failed", "Failed to get form")
		return
	}
	settings, err := h.checklist.Settings(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "state_failed", "Failed to read settings", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, presentation.FromDomainForm(req, form, settings))
}

// Configure validates and commits form values, or previews them on dry run.
// POST /requirements/{id}/configuration
func (h *Handler) Configure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON body", err.Error())
		return
	}
	values := requirement.Values(body.Values)
	if values == nil {
		values = requirement.Values{}
	}

	if body.DryRun {
		p, err := h.checklist.Preview(r.Context(), id, values)
		if err != nil {
			h.writeDomainError(w, err, "preview_failed", "Failed to preview configuration")
			return
		}
		status := http.StatusOK
		if !p.Valid() {
			status = http.StatusUnprocessableEntity
		}
		h.writeJSON(w, status, presentation.FromPreview(id, p.Current, p.Proposed, p.Errors))
		return
	}

	res, err := h.checklist.Configure(r.Context(), id, values)
	if err != nil {
		var verr *requirement.ValidationError
		if errors.As(err, &verr) {
			h.writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:         "Configuration rejected",
				Code:          "validation_error",
				RequirementID: verr.RequirementID,
				Fields:        verr.Fields,
			})
			return
		}
		h.writeDomainError(w, err, "configure_failed", "Failed to configure requirement")
		return
	}

	h.writeJSON(w, http.StatusOK, ConfigureResponse{
		RequirementID: res.RequirementID,
		Values:        res.Values,
		Completed:     res.Completed,
	})
}

// History returns accepted submissions, optionally for one requirement.
// GET /history?requirement=id
// GET /requirements/{id}/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("requirement")
	}
	if id != "" {
		if _, err := h.checklist.Get(id); err != nil {
			h.writeDomainError(w, err, "get_failed", "Failed to get requirement")
			return
		}
	}

	subs, err := h.checklist.History(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "history_failed", "Failed to read history", err.Error())
		return
	}
	if subs == nil {
		subs = []state.Submission{}
	}
	h.writeJSON(w, http.StatusOK, presentation.HistoryDTO{Submissions: subs})
}

// Next returns the first unresolved requirement, or 204 when none remain.
// GET /next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	req, ok, err := h.checklist.NextUnresolved(r.Context())
	if err != nil {
		h.writeDomainError(w, err, "evaluate_failed", "Failed to evaluate checklist")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, presentation.FromDomainRequirement(req, h.checklist))
}

// Status returns the checklist summary.
// GET /status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	rep, err := h.checklist.Evaluate(r.Context())
	if err != nil {
		h.writeDomainError(w, err, "evaluate_failed", "Failed to evaluate checklist")
		return
	}
	h.writeJSON(w, http.StatusOK, StatusResponse{
		FullyResolved: rep.FullyResolved,
		Next:          rep.Next,
		Summary:       rep.Summary,
	})
}

// ListGroups returns all groups with their requirement ids.
// GET /groups
func (h *Handler) ListGroups(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, presentation.FromDomainGroups(h.checklist.Groups(), h.checklist.List()))
}

// State returns stored settings and enabled capabilities.
// GET /state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	settings, err := h.checklist.Settings(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "state_failed", "Failed to read settings", err.Error())
		return
	}
	caps, err := h.checklist.Capabilities(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "state_failed", "Failed to read capabilities", err.Error())
		return
	}
	if caps == nil {
		caps = []string{}
	}
	h.writeJSON(w, http.StatusOK, StateResponse{Settings: settings, Capabilities: caps})
}

// Reload re-reads every manifest source. On failure the previous checklist stays active.
// POST /reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.checklist.Reload(r.Context()); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "reload_failed", "Failed to reload manifests", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamEvents streams checklist events as server-sent events.
// GET /events
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	h.streamEvents(w, r.WithContext(ctx), h.checklist.Events().Subscribe(ctx))
}

// === Helpers ===

func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request, stream <-chan events.Event) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, "streaming_unsupported", "Streaming not supported", "")
		return
	}

	_, _ = fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, ok := <-stream:
			if !ok {
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Error(log.CatAPI, "Failed to marshal event", "error", err)
				continue
			}

			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}

// writeDomainError maps registry and configuration errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error, code, message string) {
	switch {
	case errors.Is(err, requirement.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", "Requirement not found", err.Error())
	case errors.Is(err, requirement.ErrNoConfigurationStep):
		h.writeError(w, http.StatusConflict, "no_configuration_step", "Requirement has no configuration step", err.Error())
	case errors.Is(err, requirement.ErrCyclicDependency):
		h.writeError(w, http.StatusInternalServerError, "cyclic_dependency", "Checklist has a dependency cycle", err.Error())
	default:
		h.writeError(w, http.StatusInternalServerError, code, message, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(log.CatAPI, "Failed to encode JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// requestLogger logs each request at debug level once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug(log.CatAPI, "Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
