package evaluationhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/evaluation"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
}

func NewHandler(service *evaluation.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/cycles", h.handleListCycles)
	r.Post("/cycles", h.handleDeployCycle)
	r.Get("/cycles/{cycleID}", h.handleGetCycle)
	r.Patch("/cycles/{cycleID}/status", h.handleSetCycleStatus)
	r.Get("/cycles/{cycleID}/stats", h.handleCycleStats)
	r.Get("/cycles/{cycleID}/employees", h.handleEmployeeRows)
	r.Post("/submissions", h.handleSubmit)
	r.Get("/submissions/{submissionID}", h.handleGetSubmission)
	r.Get("/employees/{userID}/status", h.handleEmployeeStatus)
	r.Get("/employees/{userID}/breakdown", h.handleBreakdown)
	r.Get("/employees/{userID}/history", h.handleHistory)
	r.Get("/evaluators/{userID}/pending", h.handlePending)
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	view := strings.TrimSpace(r.URL.Query().Get("view"))
	v := shared.NewValidator()
	v.Enum("view", view, []string{evaluation.ViewActive, evaluation.ViewHistory, evaluation.ViewAll})
	if v.Reject(w, reqID) {
		return
	}
	if view == "" {
		view = evaluation.ViewAll
	}
	cycles := h.Service.ListCycles(r.Context(), evaluation.CycleFilter{
		View:  strings.ToLower(view),
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	})
	api.Success(w, cycles, reqID)
}

type deployPayload struct {
	ID                string                           `json:"id"`
	Title             string                           `json:"title" validate:"required"`
	StartDate         string                           `json:"startDate" validate:"required"`
	EndDate           string                           `json:"endDate" validate:"required"`
	Type              string                           `json:"type" validate:"oneof=annual semi-annual quarterly"`
	Status            string                           `json:"status" validate:"omitempty,oneof=upcoming active completed"`
	Weights           evaluation.Weights               `json:"weights"`
	Competencies      evaluation.Competencies          `json:"competencies"`
	FrameworkIDs      []string                         `json:"customCompetencyFrameworkIds"`
	PerformanceConfig *evaluation.PerformanceConfig    `json:"performanceConfig"`
	Assignments       map[string]evaluation.Assignment `json:"assignments"`
}

func (h *Handler) handleDeployCycle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload deployPayload
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	start := v.Date("startDate", payload.StartDate)
	end := v.Date("endDate", payload.EndDate)
	if v.Reject(w, reqID) {
		return
	}
	deployment, err := h.Service.DeployCycle(r.Context(), evaluation.Cycle{
		ID:                payload.ID,
		Title:             payload.Title,
		StartDate:         start,
		EndDate:           end,
		Type:              payload.Type,
		Status:            payload.Status,
		Weights:           payload.Weights,
		Competencies:      payload.Competencies,
		FrameworkIDs:      payload.FrameworkIDs,
		PerformanceConfig: payload.PerformanceConfig,
	}, payload.Assignments)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, deployment, reqID)
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cycle, err := h.Service.GetCycle(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, cycle, reqID)
}

func (h *Handler) handleSetCycleStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		Status string `json:"status" validate:"required"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	cycle, err := h.Service.SetCycleStatus(r.Context(), chi.URLParam(r, "cycleID"), strings.ToLower(strings.TrimSpace(payload.Status)))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, cycle, reqID)
}

func (h *Handler) handleCycleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.CycleStats(r.Context(), chi.URLParam(r, "cycleID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleEmployeeRows(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	v := shared.NewValidator()
	v.Enum("status", status, []string{evaluation.SubmissionStatusSubmitted, evaluation.SubmissionStatusPending})
	if v.Reject(w, reqID) {
		return
	}
	rows, err := h.Service.EmployeeRows(r.Context(), chi.URLParam(r, "cycleID"), strings.TrimSpace(r.URL.Query().Get("q")), status)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, shared.Paginate(rows, shared.ParsePagination(r, 100, 500)), reqID)
}

type scorePayload struct {
	QuestionID string `json:"questionId" validate:"required"`
	Score      int    `json:"score" validate:"gte=1,lte=5"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload struct {
		EvaluatorID      string                 `json:"evaluatorId" validate:"required"`
		EvaluateeID      string                 `json:"evaluateeId" validate:"required"`
		CycleID          string                 `json:"cycleId" validate:"required"`
		Type             string                 `json:"type" validate:"oneof=self peer supervisor subordinate"`
		Scores           []scorePayload         `json:"scores" validate:"min=1,dive"`
		FormID           string                 `json:"formId"`
		ImprovementAreas string                 `json:"improvementAreas"`
		NextGoals        string                 `json:"nextGoals"`
		EmployeeComments string                 `json:"employeeComments"`
		Signatures       *evaluation.Signatures `json:"signatures"`
	}
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}
	scores := make([]evaluation.Score, len(payload.Scores))
	for i, sc := range payload.Scores {
		scores[i] = evaluation.Score{QuestionID: sc.QuestionID, Score: sc.Score}
	}
	sub, err := h.Service.SubmitEvaluation(r.Context(), evaluation.Submission{
		EvaluatorID:      payload.EvaluatorID,
		EvaluateeID:      payload.EvaluateeID,
		CycleID:          payload.CycleID,
		Type:             payload.Type,
		Scores:           scores,
		FormID:           payload.FormID,
		ImprovementAreas: payload.ImprovementAreas,
		NextGoals:        payload.NextGoals,
		EmployeeComments: payload.EmployeeComments,
		Signatures:       payload.Signatures,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, sub, reqID)
}

type submissionView struct {
	evaluation.Submission
	Average *float64 `json:"average"`
}

func (h *Handler) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	sub, err := h.Service.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, submissionView{Submission: sub, Average: sub.Average()}, reqID)
}

func cycleParam(w http.ResponseWriter, r *http.Request, reqID string) (string, bool) {
	cycleID := strings.TrimSpace(r.URL.Query().Get("cycleId"))
	if cycleID == "" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "cycleId", Reason: "is required"}})
		return "", false
	}
	return cycleID, true
}

func (h *Handler) handleEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cycleID, ok := cycleParam(w, r, reqID)
	if !ok {
		return
	}
	status, err := h.Service.EmployeeStatus(r.Context(), chi.URLParam(r, "userID"), cycleID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, status, reqID)
}

func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cycleID, ok := cycleParam(w, r, reqID)
	if !ok {
		return
	}
	breakdown, err := h.Service.Breakdown(r.Context(), chi.URLParam(r, "userID"), cycleID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, breakdown, reqID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	history, err := h.Service.History(r.Context(), chi.URLParam(r, "userID"), strings.TrimSpace(r.URL.Query().Get("type")))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, history, reqID)
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	pending, err := h.Service.PendingReviews(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, pending, reqID)
}
