package leave

// Request is the canonical leave request record. LeaveTypeName is joined
// from the types snapshot by LeaveTypeID.
type Request struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	LeaveTypeID   string `json:"leaveTypeId"`
	LeaveTypeName string `json:"leaveTypeName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Days          int    `json:"days"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
}

// Balance mirrors the upstream allocation per leave type. Remaining may go
// negative when pending requests exceed the allocation; that is upstream's
// call and is surfaced as-is.
type Balance struct {
	LeaveTypeID   string `json:"leaveTypeId"`
	LeaveTypeName string `json:"leaveTypeName"`
	Allocated     int    `json:"allocated"`
	Used          int    `json:"used"`
	Pending       int    `json:"pending"`
	Remaining     int    `json:"remaining"`
}

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

func StatusColor(status string) string {
	switch status {
	case StatusApproved:
		return "success"
	case StatusPending:
		return "warning"
	case StatusRejected:
		return "error"
	case StatusCancelled:
		return "default"
	}
	return "default"
}
