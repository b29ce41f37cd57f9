package payroll

// Payslip is the canonical payslip record. Amounts are upstream-computed
// and trusted as-is; this layer never recomputes net from gross and
// deductions.
type Payslip struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Period       string  `json:"period"`
	BasicSalary  float64 `json:"basicSalary"`
	GrossSalary  float64 `json:"grossSalary"`
	Deductions   float64 `json:"deductions"`
	NetSalary    float64 `json:"netSalary"`
	Status       string  `json:"status"`
}

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusFailed  = "failed"
)

func StatusColor(status string) string {
	switch status {
	case StatusPaid:
		return "success"
	case StatusPending:
		return "warning"
	case StatusFailed:
		return "error"
	}
	return "default"
}
