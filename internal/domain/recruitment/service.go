package recruitment

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// Service owns the in-memory recruitment snapshot: the postings and
// applications last fetched from upstream, patched in place after confirmed
// mutations and fully replaced on refresh. The mutex also serializes
// mutations, so no two patches interleave.
type Service struct {
	mu      sync.Mutex
	gateway upstream.Gateway
	jobs    []JobPosting
	apps    []JobApplication
	loaded  bool
	jobMut  mutate.Mutator[JobPosting]
	appMut  mutate.Mutator[JobApplication]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		jobMut: mutate.Mutator[JobPosting]{
			Remote: gateway,
			ID:     func(j JobPosting) string { return j.ID },
			WithStatus: func(j JobPosting, status string) JobPosting {
				j.Status = status
				return j
			},
			Merge: mergeJobPosting,
		},
		appMut: mutate.Mutator[JobApplication]{
			Remote: gateway,
			ID:     func(a JobApplication) string { return a.ID },
			WithStatus: func(a JobApplication, status string) JobApplication {
				a.Status = status
				return a
			},
		},
	}
}

// Refresh replaces the snapshot. Jobs and applications are fetched
// concurrently; a failed applications fetch degrades to a postings-only
// snapshot with zero joined counts instead of failing the whole refresh.
func (s *Service) Refresh(ctx context.Context) error {
	var jobsRaw, appsRaw []map[string]any
	var appsFetched bool

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		items, err := s.gateway.FetchCollection(groupCtx, "/jobs", "jobs")
		if err != nil {
			return err
		}
		jobsRaw = items
		return nil
	})
	group.Go(func() error {
		items, err := s.gateway.FetchCollection(groupCtx, "/applications", "applications")
		if err != nil {
			slog.Warn("applications fetch degraded to empty", "err", err)
			return nil
		}
		appsRaw = items
		appsFetched = true
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	jobs := JobPostingsFromItems(jobsRaw)
	apps := JobApplicationsFromItems(appsRaw)
	joinApplications(jobs, apps, appsFetched)

	s.mu.Lock()
	s.jobs, s.apps, s.loaded = jobs, apps, true
	s.mu.Unlock()
	return nil
}

// joinApplications performs the client-side join: application counts per
// posting and posting titles per application, via a jobId lookup map.
func joinApplications(jobs []JobPosting, apps []JobApplication, counted bool) {
	titles := make(map[string]string, len(jobs))
	counts := make(map[string]int, len(jobs))
	for _, job := range jobs {
		titles[job.ID] = job.Title
	}
	for i := range apps {
		counts[apps[i].JobID]++
		if title, ok := titles[apps[i].JobID]; ok {
			apps[i].JobTitle = title
		}
	}
	if !counted {
		return
	}
	for i := range jobs {
		jobs[i].ApplicationsCount = counts[jobs[i].ID]
	}
}

func (s *Service) ensure(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *Service) Jobs(ctx context.Context, q listquery.Query) (listquery.Result[JobPosting], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[JobPosting]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.jobs, q, JobSchema), nil
}

func (s *Service) Applications(ctx context.Context, q listquery.Query) (listquery.Result[JobApplication], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[JobApplication]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.apps, q, ApplicationSchema), nil
}

// UpdateApplicationStatus proxies the status change upstream and patches the
// snapshot on success. Any status string is allowed; the workflow order is a
// presentation concern and the legacy behavior is deliberately permissive.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id, status string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.appMut.UpdateStatus(ctx, s.apps, "/applications/"+id+"/status", id, status)
	s.apps = items
	return err
}

func (s *Service) DeleteApplication(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.appMut.Delete(ctx, s.apps, "/applications/"+id, id)
	s.apps = items
	return err
}

// DeleteApplications bulk-deletes; ids whose upstream delete failed are kept
// and reported via the returned *mutate.BatchError.
func (s *Service) DeleteApplications(ctx context.Context, ids []string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.appMut.DeleteMany(ctx, s.apps, func(id string) string {
		return "/applications/" + id
	}, ids)
	s.apps = items
	return err
}

func (s *Service) UpdateJob(ctx context.Context, id string, fields map[string]any) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.jobMut.Patch(ctx, s.jobs, "/jobs/"+id, id, fields)
	s.jobs = items
	return err
}

func (s *Service) UpdateJobStatus(ctx context.Context, id, status string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.jobMut.UpdateStatus(ctx, s.jobs, "/jobs/"+id+"/status", id, status)
	s.jobs = items
	return err
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.jobMut.Delete(ctx, s.jobs, "/jobs/"+id, id)
	s.jobs = items
	return err
}

func mergeJobPosting(j JobPosting, fields map[string]any) JobPosting {
	if v, ok := fields["title"].(string); ok {
		j.Title = v
	}
	if v, ok := fields["department"].(string); ok {
		j.Department = v
	}
	if v, ok := fields["location"].(string); ok {
		j.Location = v
	}
	if v, ok := fields["employmentType"].(string); ok {
		j.EmploymentType = v
	}
	if v, ok := fields["status"].(string); ok {
		j.Status = v
	}
	if v, ok := fields["salaryRange"].(string); ok {
		j.SalaryRange = v
	}
	if v, ok := fields["experienceRequired"].(string); ok {
		j.ExperienceRequired = v
	}
	if v, ok := fields["description"].(string); ok {
		j.Description = v
	}
	if v, ok := fields["positions"].(float64); ok && int(v) >= 1 {
		j.Positions = int(v)
	}
	return j
}
