package leavehandler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/leave"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/export"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Limits  shared.PageLimits
}

func NewHandler(service *leave.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.handleListRequests)
		r.Get("/balances", h.handleListBalances)
		r.Get("/export", h.handleExport)
		r.Post("/refresh", h.handleRefresh)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/reject", h.handleReject)
		r.Post("/{requestID}/cancel", h.handleCancel)
	})
}

type requestView struct {
	leave.Request
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Requests(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]requestView, 0, len(result.Items))
	for _, req := range result.Items {
		views = append(views, requestView{Request: req, StatusColor: leave.StatusColor(req.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Service.Balances(r.Context())
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	q.Page, q.PageSize = 0, 0
	result, err := h.Service.Requests(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	rows := make([][]any, 0, len(result.Items))
	for _, req := range result.Items {
		rows = append(rows, []any{req.EmployeeName, req.LeaveTypeName, req.StartDate, req.EndDate, req.Days, req.Reason, req.Status})
	}

	var buf bytes.Buffer
	headers := []string{"Employee", "Leave Type", "Start Date", "End Date", "Days", "Reason", "Status"}
	if err := export.WriteXLSX(&buf, "Leave Requests", headers, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-requests.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("leave export write failed", "err", err)
	}
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Approve(r.Context(), requestID); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": requestID, "status": leave.StatusApproved}, middleware.GetRequestID(r.Context()))
}

type rejectPayload struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var payload rejectPayload
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Reject(r.Context(), requestID, payload.Reason); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": requestID, "status": leave.StatusRejected}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Cancel(r.Context(), requestID); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": requestID, "status": leave.StatusCancelled}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(r.Context()); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "refreshed"}, middleware.GetRequestID(r.Context()))
}
