package assets

// Asset is the canonical asset register record.
type Asset struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Status    string `json:"status"`
	Condition string `json:"condition"`
	Location  string `json:"location"`
}

const (
	StatusAvailable        = "available"
	StatusAssigned         = "assigned"
	StatusUnderMaintenance = "under_maintenance"
	StatusRetired          = "retired"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

func StatusColor(status string) string {
	switch status {
	case StatusAvailable:
		return "success"
	case StatusAssigned:
		return "info"
	case StatusUnderMaintenance:
		return "warning"
	case StatusRetired:
		return "default"
	}
	return "default"
}
