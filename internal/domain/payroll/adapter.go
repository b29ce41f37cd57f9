package payroll

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// PayslipFromRaw normalizes one raw payslip. The amount fields coalesce
// across the naming drift of the payroll endpoints (salary vs payroll vs
// payslip vintage).
func PayslipFromRaw(raw map[string]any, index int) Payslip {
	name := envelope.Str(raw, "Unknown", "employee_name", "employeeName", "name", "full_name")
	return Payslip{
		ID:           envelope.ID(raw, name, index, "id", "_id", "payslip_id", "payroll_id"),
		EmployeeID:   envelope.Str(raw, "", "employee_id", "employeeId", "emp_id"),
		EmployeeName: name,
		Period:       envelope.Str(raw, "", "period", "pay_period", "month", "salary_month"),
		BasicSalary:  envelope.Num(raw, 0, "basic_salary", "basicSalary", "basic"),
		GrossSalary:  envelope.Num(raw, 0, "gross_salary", "grossSalary", "gross", "total_earnings"),
		Deductions:   envelope.Num(raw, 0, "deductions", "total_deductions", "deduction"),
		NetSalary:    envelope.Num(raw, 0, "net_salary", "netSalary", "net", "net_pay", "take_home"),
		Status:       envelope.Str(raw, StatusPending, "status", "payment_status"),
	}
}

func PayslipsFromItems(items []map[string]any) []Payslip {
	out := make([]Payslip, 0, len(items))
	for i, raw := range items {
		out = append(out, PayslipFromRaw(raw, i))
	}
	return out
}

var PayslipSchema = listquery.Schema[Payslip]{
	Searchable: []func(Payslip) string{
		func(p Payslip) string { return p.EmployeeName },
		func(p Payslip) string { return p.Period },
		func(p Payslip) string { return p.Status },
	},
	Status: func(p Payslip) string { return p.Status },
	SortKeys: map[string]func(a, b Payslip) int{
		"employeeName": listquery.ByString(func(p Payslip) string { return p.EmployeeName }),
		"period":       listquery.ByString(func(p Payslip) string { return p.Period }),
		"grossSalary":  listquery.ByNumber(func(p Payslip) float64 { return p.GrossSalary }),
		"netSalary":    listquery.ByNumber(func(p Payslip) float64 { return p.NetSalary }),
	},
}
