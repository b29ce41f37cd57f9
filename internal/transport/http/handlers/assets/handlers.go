package assethandler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/assets"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/export"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
)

type Handler struct {
	Service *assets.Service
	Limits  shared.PageLimits
}

func NewHandler(service *assets.Service, limits shared.PageLimits) *Handler {
	return &Handler{Service: service, Limits: limits}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
		r.Put("/{assetID}", h.handleUpdate)
		r.Put("/{assetID}/status", h.handleUpdateStatus)
		r.Delete("/{assetID}", h.handleDelete)
		r.Post("/refresh", h.handleRefresh)
	})
}

type assetView struct {
	assets.Asset
	StatusColor string `json:"statusColor"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	result, err := h.Service.Assets(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]assetView, 0, len(result.Items))
	for _, asset := range result.Items {
		views = append(views, assetView{Asset: asset, StatusColor: assets.StatusColor(asset.Status)})
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := shared.ParseListQuery(r, h.Limits.Default, h.Limits.Max)
	q.Page, q.PageSize = 0, 0
	result, err := h.Service.Assets(r.Context(), q)
	if err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	rows := make([][]any, 0, len(result.Items))
	for _, asset := range result.Items {
		rows = append(rows, []any{asset.Code, asset.Name, asset.Category, asset.Brand, asset.Model, asset.Status, asset.Condition, asset.Location})
	}

	var buf bytes.Buffer
	headers := []string{"Code", "Name", "Category", "Brand", "Model", "Status", "Condition", "Location"}
	if err := export.WriteXLSX(&buf, "Assets", headers, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="assets.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("assets export write failed", "err", err)
	}
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

	assetID := chi.URLParam(r, "assetID")
	if err := h.Service.Update(r.Context(), assetID, fields); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": assetID, "status": "updated"}, middleware.GetRequestID(r.Context()))
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

	assetID := chi.URLParam(r, "assetID")
	if err := h.Service.UpdateStatus(r.Context(), assetID, payload.Status); err != nil {
		shared.FailUpstream(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": assetID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	if err := h.Service.Delete(r.Context(), assetID); err != nil {
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
