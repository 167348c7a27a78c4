package directoryhandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/domain/directory"
	"perfeval/internal/transport/http/api"
	"perfeval/internal/transport/http/middleware"
	"perfeval/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.handleListUsers)
	r.Get("/users/lookup", h.handleLookupUser)
	r.Get("/users/{userID}", h.handleGetUser)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	q := r.URL.Query()
	filter := directory.Filter{
		Query:      strings.TrimSpace(q.Get("q")),
		Role:       strings.TrimSpace(q.Get("role")),
		Department: strings.TrimSpace(q.Get("department")),
		Status:     strings.TrimSpace(q.Get("status")),
	}
	v := shared.NewValidator()
	v.Enum("role", filter.Role, directory.Roles)
	v.Enum("status", filter.Status, []string{directory.StatusActive, directory.StatusDeactivated})
	if v.Reject(w, reqID) {
		return
	}
	users := h.Service.ListUsers(r.Context(), filter)
	api.Success(w, shared.Paginate(users, shared.ParsePagination(r, 100, 500)), reqID)
}

func (h *Handler) handleLookupUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "email", Reason: "is required"}})
		return
	}
	user, err := h.Service.FindUserByEmail(r.Context(), email)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, user, reqID)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, err := h.Service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, user, reqID)
}
