// Package jobs runs the background snapshot refresher: each domain service
// re-fetches its upstream collections on a fixed interval so list queries
// serve reasonably fresh data between explicit refreshes.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/platform/metrics"
)

// Refresher is the part of a domain service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type target struct {
	name      string
	refresher Refresher
}

type Service struct {
	interval time.Duration
	metrics  *metrics.Collector
	targets  []target
}

func New(interval time.Duration, collector *metrics.Collector) *Service {
	return &Service{interval: interval, metrics: collector}
}

func (s *Service) Register(name string, refresher Refresher) {
	s.targets = append(s.targets, target{name: name, refresher: refresher})
}

// Start launches the refresh loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce refreshes every registered target, logging failures instead of
// aborting: one unreachable collection must not starve the others.
func (s *Service) RunOnce(ctx context.Context) {
	for _, t := range s.targets {
		err := t.refresher.Refresh(ctx)
		if s.metrics != nil {
			s.metrics.RecordRefresh(err != nil)
		}
		if err != nil {
			slog.Warn("snapshot refresh failed", "target", t.name, "err", err)
		}
	}
}
