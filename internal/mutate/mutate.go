// Package mutate applies status-changing actions to a cached collection
// after the upstream call confirms them. The order is always await-then-
// patch: the snapshot is only touched once upstream reports success, so a
// failed call leaves local state exactly as it was and no rollback path is
// needed.
package mutate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

// Mutator patches a collection of T in step with confirmed remote
// mutations. ID extracts an item's identifier; WithStatus and Merge produce
// the patched copy of an item.
type Mutator[T any] struct {
	Remote     upstream.Gateway
	ID         func(T) string
	WithStatus func(T, string) T
	Merge      func(T, map[string]any) T
}

// BatchError reports a partially failed batch: the ids that could not be
// mutated and why. The caller still receives the collection with the
// successful part applied.
type BatchError struct {
	Failed map[string]error
}

func (e *BatchError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("%d of the requested items failed: %s", len(e.Failed), strings.Join(ids, ", "))
}

// UpdateStatus calls the remote status endpoint and, on success, replaces
// the matching item's status locally without a refetch.
func (m Mutator[T]) UpdateStatus(ctx context.Context, items []T, path, id, status string) ([]T, error) {
	if err := m.Remote.Put(ctx, path, map[string]string{"status": status}); err != nil {
		return items, err
	}
	return m.applyStatus(items, id, status), nil
}

// Approve posts the approve action and patches the item into newStatus.
func (m Mutator[T]) Approve(ctx context.Context, items []T, path, id, newStatus string) ([]T, error) {
	if err := m.Remote.Post(ctx, path, nil); err != nil {
		return items, err
	}
	return m.applyStatus(items, id, newStatus), nil
}

// Reject posts the reject action with an optional reason and patches the
// item into newStatus.
func (m Mutator[T]) Reject(ctx context.Context, items []T, path, id, newStatus, reason string) ([]T, error) {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	if err := m.Remote.Post(ctx, path, body); err != nil {
		return items, err
	}
	return m.applyStatus(items, id, newStatus), nil
}

// Patch PUTs the partial fields upstream and merges them into the matching
// item on success.
func (m Mutator[T]) Patch(ctx context.Context, items []T, path, id string, fields map[string]any) ([]T, error) {
	if err := m.Remote.Put(ctx, path, fields); err != nil {
		return items, err
	}
	out := make([]T, len(items))
	for i, item := range items {
		if m.ID(item) == id {
			out[i] = m.Merge(item, fields)
		} else {
			out[i] = item
		}
	}
	return out, nil
}

// Delete removes the matching item locally once the remote delete succeeds.
func (m Mutator[T]) Delete(ctx context.Context, items []T, path, id string) ([]T, error) {
	if err := m.Remote.Delete(ctx, path); err != nil {
		return items, err
	}
	return m.drop(items, map[string]bool{id: true}), nil
}

// DeleteMany fires one independent delete per id, the way the legacy bulk
// delete ran Promise.all over per-id calls. Ids whose delete failed stay in
// the collection; the rest are removed. A partial failure is reported as a
// *BatchError alongside the patched collection.
func (m Mutator[T]) DeleteMany(ctx context.Context, items []T, pathFor func(id string) string, ids []string) ([]T, error) {
	var (
		mu     sync.Mutex
		failed = make(map[string]error)
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(8)
	for _, id := range ids {
		id := id
		group.Go(func() error {
			if err := m.Remote.Delete(groupCtx, pathFor(id)); err != nil {
				mu.Lock()
				failed[id] = err
				mu.Unlock()
			}
			// Failures are collected, not returned: one bad id must not
			// cancel the rest of the batch.
			return nil
		})
	}
	_ = group.Wait()

	deleted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := failed[id]; !ok {
			deleted[id] = true
		}
	}
	out := m.drop(items, deleted)
	if len(failed) > 0 {
		return out, &BatchError{Failed: failed}
	}
	return out, nil
}

func (m Mutator[T]) applyStatus(items []T, id, status string) []T {
	out := make([]T, len(items))
	for i, item := range items {
		if m.ID(item) == id && m.WithStatus != nil {
			out[i] = m.WithStatus(item, status)
		} else {
			out[i] = item
		}
	}
	return out
}

func (m Mutator[T]) drop(items []T, ids map[string]bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if ids[m.ID(item)] {
			continue
		}
		out = append(out, item)
	}
	return out
}
