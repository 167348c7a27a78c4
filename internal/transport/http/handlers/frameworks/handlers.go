package frameworkshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/frameworks"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service *frameworks.Service
}

func NewHandler(service *frameworks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/frameworks", h.handleList)
	r.Post("/frameworks", h.handleCreate)
	r.Get("/frameworks/{frameworkID}", h.handleGet)
	r.Patch("/frameworks/{frameworkID}", h.handleUpdate)
	r.Delete("/frameworks/{frameworkID}", h.handleDelete)
	r.Get("/questions/{questionID}", h.handleFindQuestion)
}

type questionPayload struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

func toQuestions(in []questionPayload) []frameworks.Question {
	out := make([]frameworks.Question, len(in))
	for i, q := range in {
		out[i] = frameworks.Question{ID: q.ID, Category: q.Category, Text: q.Text}
	}
	return out
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	api.Success(w, h.Service.ListFrameworks(r.Context(), strings.TrimSpace(r.URL.Query().Get("q"))), reqID)
}

// Question text and count are checked by the service so a rejected framework
// reports every offending field at once.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Questions   []questionPayload `json:"questions"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	created, err := h.Service.CreateFramework(r.Context(), frameworks.Framework{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Questions:   toQuestions(payload.Questions),
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	f, err := h.Service.GetFramework(r.Context(), chi.URLParam(r, "frameworkID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, f, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		Name        *string            `json:"name"`
		Description *string            `json:"description"`
		Questions   *[]questionPayload `json:"questions"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	patch := frameworks.Patch{Name: payload.Name, Description: payload.Description}
	if payload.Questions != nil {
		questions := toQuestions(*payload.Questions)
		patch.Questions = &questions
	}
	updated, err := h.Service.UpdateFramework(r.Context(), chi.URLParam(r, "frameworkID"), patch)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	frameworkID := chi.URLParam(r, "frameworkID")
	if err := h.Service.DeleteFramework(r.Context(), frameworkID); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"id": frameworkID}, reqID)
}

func (h *Handler) handleFindQuestion(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	ref, err := h.Service.FindQuestion(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, ref, reqID)
}
