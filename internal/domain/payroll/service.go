package payroll

import (
	"context"
	"errors"
	"sync"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/mutate"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

var ErrNotFound = errors.New("payslip not found")

// Service owns the payslip snapshot.
type Service struct {
	mu       sync.Mutex
	gateway  upstream.Gateway
	payslips []Payslip
	loaded   bool
	mutator  mutate.Mutator[Payslip]
}

func NewService(gateway upstream.Gateway) *Service {
	return &Service{
		gateway: gateway,
		mutator: mutate.Mutator[Payslip]{
			Remote: gateway,
			ID:     func(p Payslip) string { return p.ID },
			WithStatus: func(p Payslip, status string) Payslip {
				p.Status = status
				return p
			},
		},
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	items, err := s.gateway.FetchCollection(ctx, "/payroll/payslips", "payslips", "payrolls")
	if err != nil {
		return err
	}
	payslips := PayslipsFromItems(items)

	s.mu.Lock()
	s.payslips, s.loaded = payslips, true
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

func (s *Service) Payslips(ctx context.Context, q listquery.Query) (listquery.Result[Payslip], error) {
	if err := s.ensure(ctx); err != nil {
		return listquery.Result[Payslip]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return listquery.Run(s.payslips, q, PayslipSchema), nil
}

func (s *Service) Payslip(ctx context.Context, id string) (Payslip, error) {
	if err := s.ensure(ctx); err != nil {
		return Payslip{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, payslip := range s.payslips {
		if payslip.ID == id {
			return payslip, nil
		}
	}
	return Payslip{}, ErrNotFound
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if err := s.ensure(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.mutator.UpdateStatus(ctx, s.payslips, "/payroll/payslips/"+id+"/status", id, status)
	s.payslips = items
	return err
}
