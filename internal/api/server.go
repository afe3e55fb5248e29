package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cropwatch/internal/advisor"
	"cropwatch/internal/cropcycle"
	"cropwatch/internal/types"
)

// AdvisoryService is the service contract the handlers depend on. Defined
// locally so tests can substitute a fake without importing the pipeline.
type AdvisoryService interface {
	Refresh(ctx context.Context, farm advisor.FarmContext) (*advisor.Overview, error)
	Dismiss(ctx context.Context, suggestionID string) error
	SetTaskStatus(ctx context.Context, taskID string, status types.TaskStatus) error
	SetNotificationsEnabled(ctx context.Context, enabled bool) error
	Cleanup(ctx context.Context) error
}

// Server hosts the advisory HTTP API.
type Server struct {
	router         chi.Router
	service        AdvisoryService
	logger         types.Logger
	requestTimeout time.Duration
}

// NewServer builds the router with the standard middleware chain mounted.
func NewServer(service AdvisoryService, logger types.Logger, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}
	s := &Server{
		router:         chi.NewRouter(),
		service:        service,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
	s.mountRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) mountRoutes() {
	s.router.Use(Recoverer(s.logger))
	s.router.Use(Timeout(s.requestTimeout))
	s.router.Use(RequestID)
	s.router.Use(RequestLogger(s.logger))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/crops", s.handleListCrops)
		r.Post("/overview", s.handleOverview)
		r.Post("/suggestions/{id}/dismiss", s.handleDismiss)
		r.Patch("/tasks/{id}/status", s.handleTaskStatus)
		r.Put("/notifications/settings", s.handleNotificationSettings)
		r.Post("/notifications/cleanup", s.handleCleanup)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListCrops returns the supported crop configurations.
func (s *Server) handleListCrops(w http.ResponseWriter, _ *http.Request) {
	ids := cropcycle.CropIDs()
	crops := make([]types.CropConfig, 0, len(ids))
	for _, id := range ids {
		if cfg, ok := cropcycle.Lookup(id); ok {
			crops = append(crops, cfg)
		}
	}
	writeJSON(w, http.StatusOK, crops)
}

// overviewRequest is the farm context the client submits for a pipeline run.
type overviewRequest struct {
	Location  types.LocationContext    `json:"location"`
	Lat       float64                  `json:"lat"`
	Lon       float64                  `json:"lon"`
	CropIDs   []string                 `json:"crop_ids"`
	Plantings map[string]types.DateKey `json:"plantings"`
	FarmTasks []types.FarmTaskRef      `json:"farm_tasks,omitempty"`
}

// handleOverview runs the full pipeline and returns suggestions and tasks.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	var req overviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewAppError(types.ErrCodeValidationInvalidBody, "malformed request body", err))
		return
	}
	if req.Location.Municipality == "" {
		writeError(w, types.NewAppError(types.ErrCodeValidationMissingField, "location.municipality is required", nil))
		return
	}
	for cropID, planted := range req.Plantings {
		if !planted.Valid() {
			writeError(w, types.NewAppError(types.ErrCodeValidationInvalidDate,
				"invalid planting date for crop "+cropID, nil))
			return
		}
	}

	overview, err := s.service.Refresh(r.Context(), advisor.FarmContext{
		Location:  req.Location,
		Lat:       req.Lat,
		Lon:       req.Lon,
		Crops:     types.CropContext{CropIDs: req.CropIDs},
		Plantings: req.Plantings,
		FarmTasks: req.FarmTasks,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// handleDismiss marks a suggestion dismissed.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, types.NewAppError(types.ErrCodeValidationMissingField, "suggestion id is required", nil))
		return
	}
	if err := s.service.Dismiss(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"dismissed": id})
}

// taskStatusRequest is the body for status updates.
type taskStatusRequest struct {
	Status types.TaskStatus `json:"status"`
}

// handleTaskStatus updates the persisted status of a generated task.
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req taskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewAppError(types.ErrCodeValidationInvalidBody, "malformed request body", err))
		return
	}
	if err := s.service.SetTaskStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

// notificationSettingsRequest is the body for the notifications toggle.
type notificationSettingsRequest struct {
	Enabled bool `json:"enabled"`
}

// handleNotificationSettings persists the notifications-enabled flag.
// Disabling clears all scheduled notifications.
func (s *Server) handleNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var req notificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewAppError(types.ErrCodeValidationInvalidBody, "malformed request body", err))
		return
	}
	if err := s.service.SetNotificationsEnabled(r.Context(), req.Enabled); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}

// handleCleanup triggers the notification bookkeeping prune.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Cleanup(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleaned"})
}
