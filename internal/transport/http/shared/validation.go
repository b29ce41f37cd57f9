package shared

import (
	"net/http"
	"strings"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil || strings.TrimSpace(reason) == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: strings.TrimSpace(field), Reason: strings.TrimSpace(reason)})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

func (v *Validator) Valid() bool {
	return v == nil || len(v.issues) == 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil {
		return nil
	}
	return v.issues
}

// Reject writes the 400 envelope with the collected issues attached.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) {
	api.FailWithDetails(w, http.StatusBadRequest, "invalid_payload", "request validation failed", v.Issues(), requestID)
}
