package performance

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// GoalFromRaw normalizes one raw goal record.
func GoalFromRaw(raw map[string]any, index int) Goal {
	title := envelope.Str(raw, "Untitled", "title", "goal_title", "name")
	progress := envelope.Int(raw, 0, "progress", "completion", "percent_complete")
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return Goal{
		ID:         envelope.ID(raw, title, index, "id", "_id", "goal_id"),
		EmployeeID: envelope.Str(raw, "", "employee_id", "employeeId", "emp_id"),
		Title:      title,
		Category:   envelope.Str(raw, "General", "category", "goal_category", "type"),
		TargetDate: envelope.Str(raw, "", "target_date", "targetDate", "due_date", "deadline"),
		Progress:   progress,
		Status:     envelope.Str(raw, StatusNotStarted, "status", "goal_status"),
	}
}

func GoalsFromItems(items []map[string]any) []Goal {
	out := make([]Goal, 0, len(items))
	for i, raw := range items {
		out = append(out, GoalFromRaw(raw, i))
	}
	return out
}

var GoalSchema = listquery.Schema[Goal]{
	Searchable: []func(Goal) string{
		func(g Goal) string { return g.Title },
		func(g Goal) string { return g.Category },
		func(g Goal) string { return g.Status },
	},
	Status: func(g Goal) string { return g.Status },
	Type:   func(g Goal) string { return g.Category },
	SortKeys: map[string]func(a, b Goal) int{
		"title":      listquery.ByString(func(g Goal) string { return g.Title }),
		"targetDate": listquery.ByDate(func(g Goal) string { return g.TargetDate }),
		"progress":   listquery.ByNumber(func(g Goal) float64 { return float64(g.Progress) }),
	},
}
