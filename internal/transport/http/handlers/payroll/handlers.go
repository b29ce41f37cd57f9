package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/payroll"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/export"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Limits  shared.PageLimits
}

func NewHandler(service *payroll.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/payslips", h.handleListPayslips)
		r.Get("/payslips/export", h.handleExport)
		r.Get("/payslips/{payslipID}", h.handleGetPayslip)
		r.Get("/payslips/{payslipID}/pdf", h.handlePayslipPDF)
		r.Put("/payslips/{payslipID}/status", h.handleUpdateStatus)
		r.Post("/refresh", h.handleRefresh)
	})
}

type payslipView struct {
	payroll.Payslip
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleListPayslips(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Payslips(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]payslipView, 0, len(result.Items))
	for _, slip := range result.Items {
		views = append(views, payslipView{Payslip: slip, StatusColor: payroll.StatusColor(slip.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPayslip(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipID")
	slip, err := h.Service.Payslip(r.Context(), payslipID)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
			return
		}
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, payslipView{Payslip: slip, StatusColor: payroll.StatusColor(slip.Status)}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslipPDF(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "payslipID")
	slip, err := h.Service.Payslip(r.Context(), payslipID)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", middleware.GetRequestID(r.Context()))
			return
		}
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPDF(&buf, slip); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+slip.ID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("payslip pdf write failed", "payslipId", payslipID, "err", err)
	}
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	q.Page, q.PageSize = 0, 0
	result, err := h.Service.Payslips(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	rows := make([][]any, 0, len(result.Items))
	for _, slip := range result.Items {
		rows = append(rows, []any{slip.EmployeeName, slip.Period, slip.BasicSalary, slip.GrossSalary, slip.Deductions, slip.NetSalary, slip.Status})
	}

	var buf bytes.Buffer
	headers := []string{"Employee", "Period", "Basic", "Gross", "Deductions", "Net", "Status"}
	if err := export.WriteXLSX(&buf, "Payslips", headers, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="payslips.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("payslips export write failed", "err", err)
	}
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

	payslipID := chi.URLParam(r, "payslipID")
	if err := h.Service.UpdateStatus(r.Context(), payslipID, payload.Status); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": payslipID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Refresh(r.Context()); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "refreshed"}, middleware.GetRequestID(r.Context()))
}
