package assets

import (
	"context"
	"sync"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// Service owns the asset register snapshot.
type Service struct {
	mu      sync.Mutex
	gateway upstream.Gateway
	assets  []Asset
	loaded  bool
	mutator mutate.Mutator[Asset]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		mutator: mutate.Mutator[Asset]{
			Remote: gateway,
			ID:     func(a Asset) string { return a.ID },
			WithStatus: func(a Asset, status string) Asset {
				a.Status = status
				return a
			},
			Merge: mergeAsset,
		},
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.gateway.FetchCollection(ctx, "/assets", "assets")
	if err != nil {
		return err
	}
	assets := AssetsFromItems(items)

	s.mu.Lock()
	s.assets, s.loaded = assets, true
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

func (s *Service) Assets(ctx context.Context, q listquery.Query) (listquery.Result[Asset], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[Asset]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.assets, q, AssetSchema), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.UpdateStatus(ctx, s.assets, "/assets/"+id+"/status", id, status)
	s.assets = items
	return err
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Patch(ctx, s.assets, "/assets/"+id, id, fields)
	s.assets = items
	return err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.Delete(ctx, s.assets, "/assets/"+id, id)
	s.assets = items
	return err
}

func mergeAsset(a Asset, fields map[string]any) Asset {
	if v, ok := fields["name"].(string); ok {
		a.Name = v
	}
	if v, ok := fields["code"].(string); ok {
		a.Code = v
	}
	if v, ok := fields["category"].(string); ok {
		a.Category = v
	}
	if v, ok := fields["brand"].(string); ok {
		a.Brand = v
	}
	if v, ok := fields["model"].(string); ok {
		a.Model = v
	}
	if v, ok := fields["status"].(string); ok {
		a.Status = v
	}
	if v, ok := fields["condition"].(string); ok {
		a.Condition = v
	}
	if v, ok := fields["location"].(string); ok {
		a.Location = v
	}
	return a
}
