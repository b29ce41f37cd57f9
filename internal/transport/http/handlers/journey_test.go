package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/leave"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/payroll"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/recruitment"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/domain/roles"
	leavehandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/leave"
	payrollhandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/payroll"
	recruitmenthandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/recruitment"
	rolehandler "github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/handlers/roles"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/middleware"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/shared"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

type fakeGateway struct {
	collections map[string][]map[string]any
	mutateErrs  map[string]error
}

func (f *fakeGateway) FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error) {
	return f.collections[path], nil
}

func (f *fakeGateway) Post(ctx context.Context, path string, body any) error {
	return f.mutateErrs[path]
}

func (f *fakeGateway) Put(ctx context.Context, path string, body any) error {
	return f.mutateErrs[path]
}

func (f *fakeGateway) Delete(ctx context.Context, path string) error {
	return f.mutateErrs[path]
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *apiError       `json:"error"`
	RequestID string          `json:"requestId"`
}

type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func fixtureGateway() *fakeGateway {
	return &fakeGateway{
		collections: map[string][]map[string]any{
			"/jobs": {
				{"id": "j1", "title": "Backend Engineer", "department": "Engineering", "status": "open"},
				{"id": "j2", "job_title": "Recruiter", "department": "HR", "status": "closed"},
				{"id": "j3", "title": "Designer", "department": "Product", "status": "open"},
			},
			"/applications": {
				{"id": "a1", "job_id": "j1", "candidate_name": "Asha Rao", "email": "asha@example.com", "status": "applied"},
				{"id": "a2", "job_id": "j1", "candidate_name": "Bert Lim", "email": "bert@example.com", "status": "screening"},
				{"id": "a3", "job_id": "j2", "candidate_name": "Caro Diaz", "email": "caro@example.com", "status": "interview"},
			},
			"/leaves": {
				{"id": "l1", "employee_name": "Asha Rao", "leave_type_id": "t1", "start_date": "2026-03-02", "end_date": "2026-03-04", "status": "pending"},
			},
			"/leaves/types": {
				{"id": "t1", "name": "Annual Leave"},
			},
			"/payroll/payslips": {
				{"id": "p1", "employee_name": "Asha Rao", "period": "2026-02", "gross_salary": 5200.0, "deductions": 700.0, "net_salary": 4500.0, "status": "paid"},
			},
			"/roles": {
				{"id": "r1", "name": "Administrator", "is_system": true, "status": "active"},
				{"id": "r2", "name": "Recruiter", "status": "active"},
			},
		},
		mutateErrs: map[string]error{},
	}
}

func newTestServer(gw *fakeGateway) *httptest.Server {
	limits := shared.PageLimits{Default: 2, Max: 50}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Route("/api/v1", func(r chi.Router) {
		recruitmenthandler.NewHandler(recruitment.NewService(gw), limits).RegisterRoutes(r)
		leavehandler.NewHandler(leave.NewService(gw), limits).RegisterRoutes(r)
		payrollhandler.NewHandler(payroll.NewService(gw), limits).RegisterRoutes(r)
		rolehandler.NewHandler(roles.NewService(gw), limits).RegisterRoutes(r)
	})
	return httptest.NewServer(router)
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func TestJobListPagination(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/v1/recruitment/jobs?page=0&pageSize=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	assert.NotEmpty(t, env.RequestID)

	var jobs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.Len(t, jobs, 2)
	assert.Equal(t, "success", jobs[0]["statusColor"])

	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/v1/recruitment/jobs?status=open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
}

func TestApplicationStatusUpdate(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodPut, ts.URL+"/api/v1/recruitment/applications/a2/status", map[string]string{"status": "interview"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/v1/recruitment/applications?term=bert", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "interview", apps[0]["status"])
	assert.Equal(t, "Backend Engineer", apps[0]["jobTitle"], "title joined from the postings snapshot")
}

func TestApplicationStatusUpdateRequiresStatus(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodPut, ts.URL+"/api/v1/recruitment/applications/a2/status", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_payload", env.Error.Code)
}

func TestBulkDeletePartialFailure(t *testing.T) {
	gw := fixtureGateway()
	gw.mutateErrs["/applications/a2"] = &upstream.Error{Kind: upstream.KindApplication, Path: "/applications/a2", Message: "locked"}
	ts := newTestServer(gw)
	defer ts.Close()

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/recruitment/applications/bulk-delete", map[string]any{"ids": []string{"a1", "a2"}})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "bulk_partial_failure", env.Error.Code)
	assert.Equal(t, []any{"a2"}, env.Error.Details["failedIds"])

	// The snapshot keeps only the failed row plus untouched ones.
	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/v1/recruitment/applications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
}

func TestLeaveApproval(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/leaves/l1/approve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/v1/leaves", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var requests []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, "approved", requests[0]["status"])
	assert.Equal(t, "Annual Leave", requests[0]["leaveTypeName"])
	assert.Equal(t, float64(3), requests[0]["days"], "derived from the inclusive date range")
}

func TestPayslipPDFDownload(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/payroll/payslips/p1/pdf")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestPayslipNotFound(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/v1/payroll/payslips/ghost", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestApplicationsExport(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/recruitment/applications/export")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// xlsx files are zip archives.
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))
}

func TestSystemRoleRejected(t *testing.T) {
	ts := newTestServer(fixtureGateway())
	defer ts.Close()

	resp, env := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/roles/r1", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "system_role", env.Error.Code)

	resp, env = doJSON(t, http.MethodPut, ts.URL+"/api/v1/roles/r2", map[string]any{"name": "Senior Recruiter"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
}

func TestUpstreamRejectionMapsToBadGateway(t *testing.T) {
	gw := fixtureGateway()
	gw.mutateErrs["/leaves/l1/reject"] = &upstream.Error{Kind: upstream.KindApplication, Path: "/leaves/l1/reject", Message: "already finalized"}
	ts := newTestServer(gw)
	defer ts.Close()

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/v1/leaves/l1/reject", map[string]string{"reason": "coverage"})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "upstream_rejected", env.Error.Code)
	assert.Equal(t, "already finalized", env.Error.Message)

	// Failed rejection leaves the snapshot untouched.
	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/v1/leaves?status=pending", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
}
