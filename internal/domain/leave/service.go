package leave

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// Service owns the leave snapshot: requests, balances and the leave type
// name lookup, replaced on refresh and patched after confirmed mutations.
type Service struct {
	mu        sync.Mutex
	gateway   upstream.Gateway
	requests  []Request
	balances  []Balance
	typeNames map[string]string
	loaded    bool
	mutator   mutate.Mutator[Request]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		mutator: mutate.Mutator[Request]{
			Remote: gateway,
			ID:     func(r Request) string { return r.ID },
			WithStatus: func(r Request, status string) Request {
				r.Status = status
				return r
			},
		},
	}
}

// Refresh replaces the snapshot. Requests are the primary fetch; a failed
// balances or types fetch degrades to empty rather than failing the page.
func (s *Service) Refresh(ctx context.Context) error {
	var requestsRaw, balancesRaw, typesRaw []map[string]any

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		items, err := s.gateway.FetchCollection(groupCtx, "/leaves")
		if err != nil {
			return err
		}
		requestsRaw = items
		return nil
	})
	group.Go(func() error {
		items, err := s.gateway.FetchCollection(groupCtx, "/leaves/balances", "balances")
		if err != nil {
			slog.Warn("leave balances fetch degraded to empty", "err", err)
			return nil
		}
		balancesRaw = items
		return nil
	})
	group.Go(func() error {
		items, err := s.gateway.FetchCollection(groupCtx, "/leaves/types", "types")
		if err != nil {
			slog.Warn("leave types fetch degraded to empty", "err", err)
			return nil
		}
		typesRaw = items
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	typeNames := make(map[string]string, len(typesRaw))
	for i, raw := range typesRaw {
		name := envelope.Str(raw, "", "name", "type_name", "leave_type_name")
		id := envelope.ID(raw, name, i, "id", "_id", "leave_type_id")
		if name != "" {
			typeNames[id] = name
		}
	}

	requests := RequestsFromItems(requestsRaw)
	balances := BalancesFromItems(balancesRaw)
	for i := range requests {
		if name, ok := typeNames[requests[i].LeaveTypeID]; ok {
			requests[i].LeaveTypeName = name
		}
	}
	for i := range balances {
		if name, ok := typeNames[balances[i].LeaveTypeID]; ok {
			balances[i].LeaveTypeName = name
		}
	}

	s.mu.Lock()
	s.requests, s.balances, s.typeNames, s.loaded = requests, balances, typeNames, true
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

func (s *Service) Requests(ctx context.Context, q listquery.Query) (listquery.Result[Request], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[Request]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.requests, q, RequestSchema), nil
}

func (s *Service) Balances(ctx context.Context) ([]Balance, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Balance, len(s.balances))
	copy(out, s.balances)
	return out, nil
}

// Approve confirms the request upstream, then flips the snapshot copy to
// approved. A failed call leaves the snapshot untouched.
func (s *Service) Approve(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Approve(ctx, s.requests, "/leaves/"+id+"/approve", id, StatusApproved)
	s.requests = items
	return err
}

func (s *Service) Reject(ctx context.Context, id, reason string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Reject(ctx, s.requests, "/leaves/"+id+"/reject", id, StatusRejected, reason)
	s.requests = items
	return err
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Approve(ctx, s.requests, "/leaves/"+id+"/cancel", id, StatusCancelled)
	s.requests = items
	return err
}
