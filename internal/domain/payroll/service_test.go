package payroll

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

type fakeGateway struct {
	collections map[string][]map[string]any
	fetchErrs   map[string]error
	mutateErrs  map[string]error
}

func (f *fakeGateway) FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error) {
	if err := f.fetchErrs[path]; err != nil {
		return nil, err
	}
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

func payrollFixture() *fakeGateway {
	return &fakeGateway{
		collections: map[string][]map[string]any{
			"/payroll/payslips": {
				{"id": "p-1", "employee_name": "Alice", "period": "January 2024", "gross": float64(5000), "total_deductions": float64(800), "net_pay": float64(4100), "status": "paid"},
				{"id": "p-2", "employee_name": "Bob", "month": "January 2024", "status": "pending"},
			},
		},
		fetchErrs:  map[string]error{},
		mutateErrs: map[string]error{},
	}
}

func TestPayslipAmountsTrustedNotRecomputed(t *testing.T) {
	svc := NewService(payrollFixture())

	result, err := svc.Payslips(context.Background(), listquery.Query{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	// 5000 - 800 is 4200, but upstream said 4100 and upstream wins.
	assert.Equal(t, 4100.0, result.Items[0].NetSalary)
	assert.Equal(t, "January 2024", result.Items[1].Period, "month fallback key")
}

func TestPayslipLookup(t *testing.T) {
	svc := NewService(payrollFixture())

	payslip, err := svc.Payslip(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", payslip.EmployeeName)

	_, err = svc.Payslip(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(payrollFixture())

	require.NoError(t, svc.UpdateStatus(context.Background(), "p-2", StatusPaid))

	payslip, err := svc.Payslip(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, payslip.Status)
}

func TestUpdateStatusFailure(t *testing.T) {
	gw := payrollFixture()
	gw.mutateErrs["/payroll/payslips/p-2/status"] = &upstream.Error{Kind: upstream.KindApplication, Message: "period locked"}
	svc := NewService(gw)

	require.Error(t, svc.UpdateStatus(context.Background(), "p-2", StatusPaid))

	payslip, err := svc.Payslip(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, payslip.Status)
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, Payslip{ID: "p-1", EmployeeName: "Alice", Period: "January 2024", GrossSalary: 5000, Deductions: 800, NetSalary: 4200, Status: StatusPaid})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}
