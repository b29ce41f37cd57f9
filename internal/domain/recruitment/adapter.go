package recruitment

import (
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
)

// The fallback chains below are load-bearing: the upstream services disagree
// on field names per endpoint version, and a record whose source used an
// alternate key must normalize instead of being dropped.

// JobPostingFromRaw normalizes one raw job record. It is total: nil or empty
// input yields an all-defaults posting.
func JobPostingFromRaw(raw map[string]any, index int) JobPosting {
	title := envelope.Str(raw, "Untitled", "title", "job_title", "name")
	return JobPosting{
		ID:                 envelope.ID(raw, title, index, "id", "_id", "jobId", "job_id"),
		Title:              title,
		Department:         envelope.Str(raw, "General", "department", "dept", "department_name"),
		Location:           envelope.Str(raw, "Remote", "location", "job_location", "city"),
		EmploymentType:     envelope.Str(raw, "full_time", "employment_type", "employmentType", "type", "job_type"),
		Positions:          atLeast(envelope.Int(raw, 1, "positions", "openings", "vacancies"), 1),
		ApplicationsCount:  atLeast(envelope.Int(raw, 0, "applications_count", "applicationsCount", "applicants"), 0),
		Status:             envelope.Str(raw, JobStatusOpen, "status", "job_status"),
		PostedDate:         envelope.Str(raw, "", "posted_date", "postedDate", "created_at", "createdAt"),
		SalaryRange:        envelope.Str(raw, "", "salary_range", "salaryRange", "salary"),
		ExperienceRequired: envelope.Str(raw, "", "experience_required", "experienceRequired", "experience"),
		Description:        envelope.Str(raw, "", "description", "job_description"),
	}
}

// JobApplicationFromRaw normalizes one raw application record.
func JobApplicationFromRaw(raw map[string]any, index int) JobApplication {
	name := envelope.Str(raw, "Unknown", "candidate_name", "candidateName", "name", "full_name", "applicant_name")
	return JobApplication{
		ID:            envelope.ID(raw, name, index, "id", "_id", "application_id", "applicationId"),
		JobID:         envelope.Str(raw, "", "job_id", "jobId", "job", "posting_id"),
		CandidateName: name,
		Email:         envelope.Str(raw, "", "email", "candidate_email"),
		Phone:         envelope.Str(raw, "", "phone", "phone_number", "mobile"),
		Experience:    envelope.Str(raw, "", "experience", "experience_years", "years_of_experience"),
		CoverLetter:   envelope.Str(raw, "", "cover_letter", "coverLetter"),
		ResumeRef:     envelope.Str(raw, "", "resume", "resume_url", "resume_path", "cv"),
		Status:        envelope.Str(raw, ApplicationApplied, "status", "application_status", "stage"),
		AppliedDate:   envelope.Str(raw, "", "applied_date", "appliedDate", "created_at", "createdAt"),
	}
}

func JobPostingsFromItems(items []map[string]any) []JobPosting {
	out := make([]JobPosting, 0, len(items))
	for i, raw := range items {
		out = append(out, JobPostingFromRaw(raw, i))
	}
	return out
}

func JobApplicationsFromItems(items []map[string]any) []JobApplication {
	out := make([]JobApplication, 0, len(items))
	for i, raw := range items {
		out = append(out, JobApplicationFromRaw(raw, i))
	}
	return out
}

// JobSchema drives list queries over postings: which fields the term
// searches, the status/type filters, and the sortable keys.
var JobSchema = listquery.Schema[JobPosting]{
	Searchable: []func(JobPosting) string{
		func(j JobPosting) string { return j.Title },
		func(j JobPosting) string { return j.Department },
		func(j JobPosting) string { return j.Location },
		func(j JobPosting) string { return j.Status },
	},
	Status: func(j JobPosting) string { return j.Status },
	Type:   func(j JobPosting) string { return j.EmploymentType },
	SortKeys: map[string]func(a, b JobPosting) int{
		"title":        listquery.ByString(func(j JobPosting) string { return j.Title }),
		"department":   listquery.ByString(func(j JobPosting) string { return j.Department }),
		"postedDate":   listquery.ByDate(func(j JobPosting) string { return j.PostedDate }),
		"positions":    listquery.ByNumber(func(j JobPosting) float64 { return float64(j.Positions) }),
		"applications": listquery.ByNumber(func(j JobPosting) float64 { return float64(j.ApplicationsCount) }),
	},
}

// ApplicationSchema searches the same fields the legacy applications page
// matched its term against.
var ApplicationSchema = listquery.Schema[JobApplication]{
	Searchable: []func(JobApplication) string{
		func(a JobApplication) string { return a.CandidateName },
		func(a JobApplication) string { return a.Email },
		func(a JobApplication) string { return a.Phone },
		func(a JobApplication) string { return a.JobTitle },
		func(a JobApplication) string { return a.Experience },
		func(a JobApplication) string { return a.CoverLetter },
		func(a JobApplication) string { return a.Status },
	},
	Status: func(a JobApplication) string { return a.Status },
	SortKeys: map[string]func(a, b JobApplication) int{
		"candidateName": listquery.ByString(func(a JobApplication) string { return a.CandidateName }),
		"jobTitle":      listquery.ByString(func(a JobApplication) string { return a.JobTitle }),
		"appliedDate":   listquery.ByDate(func(a JobApplication) string { return a.AppliedDate }),
		"status":        listquery.ByString(func(a JobApplication) string { return a.Status }),
	},
}

func atLeast(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}
