package recruitment

// JobPosting is the canonical job record every raw upstream shape is
// normalized into.
type JobPosting struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Department         string `json:"department"`
	Location           string `json:"location"`
	EmploymentType     string `json:"employmentType"`
	Positions          int    `json:"positions"`
	ApplicationsCount  int    `json:"applicationsCount"`
	Status             string `json:"status"`
	PostedDate         string `json:"postedDate"`
	SalaryRange        string `json:"salaryRange"`
	ExperienceRequired string `json:"experienceRequired"`
	Description        string `json:"description"`
}

// JobApplication is the canonical application record. JobTitle is joined
// from the postings snapshot by JobID, not read from the payload.
type JobApplication struct {
	ID            string `json:"id"`
	JobID         string `json:"jobId"`
	JobTitle      string `json:"jobTitle"`
	CandidateName string `json:"candidateName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Experience    string `json:"experience"`
	CoverLetter   string `json:"coverLetter"`
	ResumeRef     string `json:"resumeRef"`
	Status        string `json:"status"`
	AppliedDate   string `json:"appliedDate"`
}

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusOnHold = "on_hold"
)

const (
	ApplicationApplied     = "applied"
	ApplicationScreening   = "screening"
	ApplicationInterview   = "interview"
	ApplicationOffer       = "offer"
	ApplicationHired       = "hired"
	ApplicationRejected    = "rejected"
	ApplicationUnderReview = "under_review"
)

// JobStatusColor maps a posting status onto the chip color vocabulary the
// UI renders.
func JobStatusColor(status string) string {
	switch status {
	case JobStatusOpen:
		return "success"
	case JobStatusOnHold:
		return "warning"
	case JobStatusClosed:
		return "default"
	}
	return "default"
}

func ApplicationStatusColor(status string) string {
	switch status {
	case ApplicationHired:
		return "success"
	case ApplicationOffer, ApplicationInterview:
		return "info"
	case ApplicationScreening, ApplicationUnderReview:
		return "warning"
	case ApplicationRejected:
		return "error"
	}
	return "default"
}
