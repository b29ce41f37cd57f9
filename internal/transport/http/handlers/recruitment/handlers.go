package recruitmenthandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/recruitment"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/export"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *recruitment.Service
	Limits  shared.PageLimits
}

func NewHandler(service *recruitment.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		r.Get("/jobs", h.handleListJobs)
		r.Put("/jobs/{jobID}", h.handleUpdateJob)
		r.Put("/jobs/{jobID}/status", h.handleUpdateJobStatus)
		r.Delete("/jobs/{jobID}", h.handleDeleteJob)
		r.Get("/applications", h.handleListApplications)
		r.Get("/applications/export", h.handleExportApplications)
		r.Put("/applications/{applicationID}/status", h.handleUpdateApplicationStatus)
		r.Delete("/applications/{applicationID}", h.handleDeleteApplication)
		r.Post("/applications/bulk-delete", h.handleBulkDeleteApplications)
		r.Post("/refresh", h.handleRefresh)
	})
}

type jobView struct {
	recruitment.JobPosting
	StatusColor string `json:"statusColor"`
}

type applicationView struct {
	recruitment.JobApplication
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Jobs(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]jobView, 0, len(result.Items))
	for _, job := range result.Items {
		views = append(views, jobView{JobPosting: job, StatusColor: recruitment.JobStatusColor(job.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Applications(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]applicationView, 0, len(result.Items))
	for _, app := range result.Items {
		views = append(views, applicationView{JobApplication: app, StatusColor: recruitment.ApplicationStatusColor(app.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

// handleExportApplications writes the full filtered set, not just the
// current page, as an xlsx download.
func (h *Handler) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	q.Page, q.PageSize = 0, 0
	result, err := h.Service.Applications(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	rows := make([][]any, 0, len(result.Items))
	for _, app := range result.Items {
		rows = append(rows, []any{app.CandidateName, app.Email, app.Phone, app.JobTitle, app.Experience, app.Status, app.AppliedDate})
	}

	var buf bytes.Buffer
	headers := []string{"Candidate", "Email", "Phone", "Applied For", "Experience", "Status", "Applied Date"}
	if err := export.WriteXLSX(&buf, "Applications", headers, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("applications export write failed", "err", err)
	}
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
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

	applicationID := chi.URLParam(r, "applicationID")
	if err := h.Service.UpdateApplicationStatus(r.Context(), applicationID, payload.Status); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": applicationID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	if err := h.Service.DeleteApplication(r.Context(), applicationID); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type bulkDeletePayload struct {
	IDs []string `json:"ids"`
}

func (h *Handler) handleBulkDeleteApplications(w http.ResponseWriter, r *http.Request) {
	var payload bulkDeletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.IDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "ids required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.DeleteApplications(r.Context(), payload.IDs); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"status": "deleted", "count": len(payload.IDs)}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(fields) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "no fields to update", middleware.GetRequestID(r.Context()))
		return
	}

	jobID := chi.URLParam(r, "jobID")
	if err := h.Service.UpdateJob(r.Context(), jobID, fields); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": jobID, "status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
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

	jobID := chi.URLParam(r, "jobID")
	if err := h.Service.UpdateJobStatus(r.Context(), jobID, payload.Status); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": jobID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if err := h.Service.DeleteJob(r.Context(), jobID); err != nil {
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
	if user, ok := middleware.GetUser(r.Context()); ok {
		slog.Info("recruitment snapshot refreshed", "requestedBy", fmt.Sprintf("%s <%s>", user.UserID, user.Email))
	}
	api.Success(w, map[string]string{"status": "refreshed"}, middleware.GetRequestID(r.Context()))
}
