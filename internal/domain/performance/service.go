package performance

import (
	"context"
	"sync"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// Service owns the goals snapshot.
type Service struct {
	mu      sync.Mutex
	gateway upstream.Gateway
	goals   []Goal
	loaded  bool
	mutator mutate.Mutator[Goal]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		mutator: mutate.Mutator[Goal]{
			Remote: gateway,
			ID:     func(g Goal) string { return g.ID },
			WithStatus: func(g Goal, status string) Goal {
				g.Status = status
				return g
			},
			Merge: mergeGoal,
		},
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.gateway.FetchCollection(ctx, "/goals", "goals")
	if err != nil {
		return err
	}
	goals := GoalsFromItems(items)

	s.mu.Lock()
	s.goals, s.loaded = goals, true
	s.mu.Unlock()
	return nil
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

func (s *Service) Goals(ctx context.Context, q listquery.Query) (listquery.Result[Goal], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[Goal]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.goals, q, GoalSchema), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.UpdateStatus(ctx, s.goals, "/goals/"+id+"/status", id, status)
	s.goals = items
	return err
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Patch(ctx, s.goals, "/goals/"+id, id, fields)
	s.goals = items
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Delete(ctx, s.goals, "/goals/"+id, id)
	s.goals = items
	return err
}

func mergeGoal(g Goal, fields map[string]any) Goal {
	if v, ok := fields["title"].(string); ok {
		g.Title = v
	}
	if v, ok := fields["category"].(string); ok {
		g.Category = v
	}
	if v, ok := fields["targetDate"].(string); ok {
		g.TargetDate = v
	}
	if v, ok := fields["status"].(string); ok {
		g.Status = v
	}
	if v, ok := fields["progress"].(float64); ok {
		progress := int(v)
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		g.Progress = progress
	}
	return g
}
