package roles

// Role is the canonical access role record. System roles are read-only:
// update and delete are rejected before any upstream call.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsSystem    bool   `json:"isSystem"`
	Status      string `json:"status"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func StatusColor(status string) string {
	if status == StatusActive {
		return "success"
	}
	return "default"
}
