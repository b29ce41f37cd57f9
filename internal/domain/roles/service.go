package roles

import (
	"context"
	"errors"
	"sync"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

var (
	ErrNotFound   = errors.New("role not found")
	ErrSystemRole = errors.New("system roles cannot be modified")
)

// Service owns the roles snapshot.
type Service struct {
	mu      sync.Mutex
	gateway upstream.Gateway
	roles   []Role
	loaded  bool
	mutator mutate.Mutator[Role]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		mutator: mutate.Mutator[Role]{
			Remote: gateway,
			ID:     func(r Role) string { return r.ID },
			WithStatus: func(r Role, status string) Role {
				r.Status = status
				return r
			},
			Merge: mergeRole,
		},
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.gateway.FetchCollection(ctx, "/roles", "roles")
	if err != nil {
		return err
	}
	roles := RolesFromItems(items)

	s.mu.Lock()
	s.roles, s.loaded = roles, true
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

func (s *Service) Roles(ctx context.Context, q listquery.Query) (listquery.Result[Role], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[Role]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.roles, q, RoleSchema), nil
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(id); err != nil {
		return err
	}
	items, err := s.mutator.Patch(ctx, s.roles, "/roles/"+id, id, fields)
	s.roles = items
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(id); err != nil {
		return err
	}
	items, err := s.mutator.Delete(ctx, s.roles, "/roles/"+id, id)
	s.roles = items
	return err
}

// guard rejects mutations against system roles before anything goes
// upstream. Caller holds the lock.
func (s *Service) guard(id string) error {
	for _, role := range s.roles {
		if role.ID == id {
			if role.IsSystem {
				return ErrSystemRole
			}
			return nil
		}
	}
	return ErrNotFound
}

func mergeRole(r Role, fields map[string]any) Role {
	if v, ok := fields["name"].(string); ok {
		r.Name = v
	}
	if v, ok := fields["slug"].(string); ok {
		r.Slug = v
	}
	if v, ok := fields["description"].(string); ok {
		r.Description = v
	}
	if v, ok := fields["status"].(string); ok {
		r.Status = v
	}
	return r
}
