package rolehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/roles"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *roles.Service
	Limits  shared.PageLimits
}

func NewHandler(service *roles.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Put("/{roleID}", h.handleUpdate)
		r.Delete("/{roleID}", h.handleDelete)
		r.Post("/refresh", h.handleRefresh)
	})
}

type roleView struct {
	roles.Role
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Roles(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]roleView, 0, len(result.Items))
	for _, role := range result.Items {
		views = append(views, roleView{Role: role, StatusColor: roles.StatusColor(role.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(fields) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "no fields to update", middleware.GetRequestID(r.Context()))
		return
	}

	roleID := chi.URLParam(r, "roleID")
	if err := h.Service.Update(r.Context(), roleID, fields); err != nil {
		h.failRole(w, r, err)
		return
	}
	api.Success(w, map[string]string{"id": roleID, "status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "roleID")
	if err := h.Service.Delete(r.Context(), roleID); err != nil {
		h.failRole(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// failRole handles the role-specific guards before the generic mapping:
// system roles are read-only and unknown ids are a 404, both decided
// locally without an upstream call.
func (h *Handler) failRole(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roles.ErrSystemRole):
		api.Fail(w, http.StatusForbidden, "system_role", "system roles cannot be modified", middleware.GetRequestID(r.Context()))
	case errors.Is(err, roles.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "role not found", middleware.GetRequestID(r.Context()))
	default:
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(r.Context()); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "refreshed"}, middleware.GetRequestID(r.Context()))
}
