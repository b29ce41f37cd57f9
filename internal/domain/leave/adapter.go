package leave

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// RequestFromRaw normalizes one raw leave request. When upstream omits the
// day count it is derived from the inclusive date range.
func RequestFromRaw(raw map[string]any, index int) Request {
	name := envelope.Str(raw, "Unknown", "employee_name", "employeeName", "name", "full_name")
	request := Request{
		ID:           envelope.ID(raw, name, index, "id", "_id", "request_id", "leave_id"),
		EmployeeID:   envelope.Str(raw, "", "employee_id", "employeeId", "emp_id"),
		EmployeeName: name,
		LeaveTypeID:  envelope.Str(raw, "", "leave_type_id", "leaveTypeId", "type_id", "leave_type"),
		StartDate:    envelope.Str(raw, "", "start_date", "startDate", "from", "from_date"),
		EndDate:      envelope.Str(raw, "", "end_date", "endDate", "to", "to_date"),
		Days:         envelope.Int(raw, 0, "days", "total_days", "no_of_days"),
		Reason:       envelope.Str(raw, "", "reason", "remarks", "description"),
		Status:       envelope.Str(raw, StatusPending, "status", "leave_status"),
	}
	if request.Days <= 0 {
		request.Days = days(request.StartDate, request.EndDate)
	}
	return request
}

// BalanceFromRaw normalizes one raw balance row. Remaining is derived as
// allocated − used only when upstream did not provide it; a negative value
// is kept.
func BalanceFromRaw(raw map[string]any, index int) Balance {
	name := envelope.Str(raw, "General", "leave_type_name", "leaveTypeName", "type_name", "name")
	balance := Balance{
		LeaveTypeID:   envelope.ID(raw, name, index, "leave_type_id", "leaveTypeId", "type_id", "id"),
		LeaveTypeName: name,
		Allocated:     envelope.Int(raw, 0, "allocated", "total", "entitlement"),
		Used:          envelope.Int(raw, 0, "used", "taken", "consumed"),
		Pending:       envelope.Int(raw, 0, "pending", "requested"),
	}
	if _, present := raw["remaining"]; present {
		balance.Remaining = envelope.Int(raw, 0, "remaining")
	} else {
		balance.Remaining = balance.Allocated - balance.Used
	}
	return balance
}

func RequestsFromItems(items []map[string]any) []Request {
	out := make([]Request, 0, len(items))
	for i, raw := range items {
		out = append(out, RequestFromRaw(raw, i))
	}
	return out
}

func BalancesFromItems(items []map[string]any) []Balance {
	out := make([]Balance, 0, len(items))
	for i, raw := range items {
		out = append(out, BalanceFromRaw(raw, i))
	}
	return out
}

var RequestSchema = listquery.Schema[Request]{
	Searchable: []func(Request) string{
		func(r Request) string { return r.EmployeeName },
		func(r Request) string { return r.LeaveTypeName },
		func(r Request) string { return r.Reason },
		func(r Request) string { return r.Status },
	},
	Status: func(r Request) string { return r.Status },
	Type:   func(r Request) string { return r.LeaveTypeID },
	SortKeys: map[string]func(a, b Request) int{
		"employeeName": listquery.ByString(func(r Request) string { return r.EmployeeName }),
		"startDate":    listquery.ByDate(func(r Request) string { return r.StartDate }),
		"days":         listquery.ByNumber(func(r Request) float64 { return float64(r.Days) }),
		"status":       listquery.ByString(func(r Request) string { return r.Status }),
	},
}
