package performance

// Goal is the canonical performance goal record. Progress is clamped to
// 0-100 at normalization.
type Goal struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	TargetDate string `json:"targetDate"`
	Progress   int    `json:"progress"`
	Status     string `json:"status"`
}

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"
)

func StatusColor(status string) string {
	switch status {
	case StatusCompleted:
		return "success"
	case StatusInProgress:
		return "info"
	case StatusOverdue:
		return "error"
	case StatusNotStarted:
		return "default"
	}
	return "default"
}
