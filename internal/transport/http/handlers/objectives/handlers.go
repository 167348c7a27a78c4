package objectiveshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/objectives"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service *objectives.Service
}

func NewHandler(service *objectives.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users/{userID}/objectives", h.handleListObjectives)
	r.Get("/users/{userID}/score", h.handleUserScore)
	r.Post("/objectives", h.handleCreateObjective)
	r.Get("/objectives/{objectiveID}/kpis", h.handleListKPIs)
	r.Post("/objectives/{objectiveID}/kpis", h.handleCreateKPI)
	r.Get("/objectives/{objectiveID}/score", h.handleObjectiveScore)
}

func cycleParam(w http.ResponseWriter, r *http.Request, reqID string) (string, bool) {
	cycleID := strings.TrimSpace(r.URL.Query().Get("cycleId"))
	if cycleID == "" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "cycleId", Reason: "is required"}})
		return "", false
	}
	return cycleID, true
}

func (h *Handler) handleListObjectives(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cycleID, ok := cycleParam(w, r, reqID)
	if !ok {
		return
	}
	api.Success(w, h.Service.ObjectivesFor(r.Context(), chi.URLParam(r, "userID"), cycleID), reqID)
}

func (h *Handler) handleUserScore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cycleID, ok := cycleParam(w, r, reqID)
	if !ok {
		return
	}
	api.Success(w, h.Service.UserWeightedScore(r.Context(), chi.URLParam(r, "userID"), cycleID), reqID)
}

func (h *Handler) handleCreateObjective(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		ID          string  `json:"id"`
		UserID      string  `json:"userId" validate:"required"`
		CycleID     string  `json:"cycleId" validate:"required"`
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description"`
		Weight      float64 `json:"weight" validate:"gt=0,lte=100"`
		Type        string  `json:"type" validate:"oneof=own shared"`
		Division    string  `json:"division"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	created, err := h.Service.CreateObjective(r.Context(), objectives.Objective{
		ID:          payload.ID,
		UserID:      payload.UserID,
		CycleID:     payload.CycleID,
		Title:       payload.Title,
		Description: payload.Description,
		Weight:      payload.Weight,
		Type:        payload.Type,
		Division:    payload.Division,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleListKPIs(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	api.Success(w, h.Service.KPIsFor(r.Context(), chi.URLParam(r, "objectiveID")), reqID)
}

func (h *Handler) handleCreateKPI(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		ID          string  `json:"id"`
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description"`
		Weight      float64 `json:"weight" validate:"gt=0,lte=100"`
		Score       float64 `json:"score" validate:"gte=0,lte=100"`
		Target      float64 `json:"target" validate:"gte=0"`
		Achieved    float64 `json:"achieved" validate:"gte=0"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	created, err := h.Service.CreateKPI(r.Context(), objectives.KPI{
		ID:          payload.ID,
		ObjectiveID: chi.URLParam(r, "objectiveID"),
		Title:       payload.Title,
		Description: payload.Description,
		Weight:      payload.Weight,
		Score:       payload.Score,
		Target:      payload.Target,
		Achieved:    payload.Achieved,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleObjectiveScore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	objectiveID := chi.URLParam(r, "objectiveID")
	score, err := h.Service.ObjectiveWeightedScore(r.Context(), objectiveID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"objectiveId": objectiveID, "weightedScore": score}, reqID)
}
