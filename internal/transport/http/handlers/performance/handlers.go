package performancehandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/performance"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Limits  shared.PageLimits
}

func NewHandler(service *performance.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/goals", h.handleListGoals)
		r.Put("/goals/{goalID}", h.handleUpdateGoal)
		r.Put("/goals/{goalID}/status", h.handleUpdateStatus)
		r.Delete("/goals/{goalID}", h.handleDeleteGoal)
		r.Post("/refresh", h.handleRefresh)
	})
}

type goalView struct {
	performance.Goal
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Goals(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]goalView, 0, len(result.Items))
	for _, goal := range result.Items {
		views = append(views, goalView{Goal: goal, StatusColor: performance.StatusColor(goal.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(fields) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "no fields to update", middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.Update(r.Context(), goalID, fields); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": goalID, "status": "updated"}, middleware.GetRequestID(r.Context()))
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	v := shared.NewValidator()
	v.Required("status", payload.Status, "status required")
	if !v.Valid() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.UpdateStatus(r.Context(), goalID, payload.Status); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": goalID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalID")
	if err := h.Service.Delete(r.Context(), goalID); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(r.Context()); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "refreshed"}, middleware.GetRequestID(r.Context()))
}
