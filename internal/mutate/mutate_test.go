package mutate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

type item struct {
	ID     string
	Name   string
	Status string
}

// fakeGateway records calls and fails the paths listed in failPaths.
type fakeGateway struct {
	failPaths map[string]string
	calls     []string
}

func (f *fakeGateway) fail(path string) error {
	if msg, ok := f.failPaths[path]; ok {
		return &upstream.Error{Kind: upstream.KindApplication, Path: path, Message: msg}
	}
	return nil
}

func (f *fakeGateway) FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error) {
	return nil, nil
}

func (f *fakeGateway) Post(ctx context.Context, path string, body any) error {
	f.calls = append(f.calls, "POST "+path)
	return f.fail(path)
}

func (f *fakeGateway) Put(ctx context.Context, path string, body any) error {
	f.calls = append(f.calls, "PUT "+path)
	return f.fail(path)
}

func (f *fakeGateway) Delete(ctx context.Context, path string) error {
	return f.fail(path)
}

func newMutator(gw upstream.Gateway) Mutator[item] {
	return Mutator[item]{
		Remote:     gw,
		ID:         func(i item) string { return i.ID },
		WithStatus: func(i item, status string) item { i.Status = status; return i },
		Merge: func(i item, fields map[string]any) item {
			if name, ok := fields["name"].(string); ok {
				i.Name = name
			}
			if status, ok := fields["status"].(string); ok {
				i.Status = status
			}
			return i
		},
	}
}

func sampleItems() []item {
	return []item{
		{ID: "1", Name: "first", Status: "applied"},
		{ID: "2", Name: "second", Status: "screening"},
		{ID: "3", Name: "third", Status: "screening"},
	}
}

func TestUpdateStatusPatchesOnlyMatch(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).UpdateStatus(context.Background(), sampleItems(), "/applications/3/status", "3", "interview")

	require.NoError(t, err)
	assert.Equal(t, []string{"PUT /applications/3/status"}, gw.calls)
	assert.Equal(t, "applied", items[0].Status)
	assert.Equal(t, "screening", items[1].Status)
	assert.Equal(t, "interview", items[2].Status)
}

func TestUpdateStatusFailureLeavesItemsUntouched(t *testing.T) {
	gw := &fakeGateway{failPaths: map[string]string{"/applications/3/status": "not allowed"}}
	original := sampleItems()

	items, err := newMutator(gw).UpdateStatus(context.Background(), original, "/applications/3/status", "3", "interview")

	require.Error(t, err)
	assert.Equal(t, original, items)
}

func TestApprovePreservesOrder(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).Approve(context.Background(), sampleItems(), "/leaves/2/approve", "2", "approved")

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "approved", items[1].Status)
}

func TestRejectWithReason(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).Reject(context.Background(), sampleItems(), "/leaves/1/reject", "1", "rejected", "coverage gap")

	require.NoError(t, err)
	assert.Equal(t, "rejected", items[0].Status)
}

func TestPatchMergesFields(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).Patch(context.Background(), sampleItems(), "/jobs/2", "2", map[string]any{"name": "renamed"})

	require.NoError(t, err)
	assert.Equal(t, "renamed", items[1].Name)
	assert.Equal(t, "first", items[0].Name)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).Delete(context.Background(), sampleItems(), "/jobs/2", "2")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "3", items[1].ID)
}

func TestDeleteFailureKeepsCollection(t *testing.T) {
	gw := &fakeGateway{failPaths: map[string]string{"/jobs/2": "in use"}}
	original := sampleItems()

	items, err := newMutator(gw).Delete(context.Background(), original, "/jobs/2", "2")

	require.Error(t, err)
	assert.Equal(t, original, items)
}

func TestDeleteManyPartialFailure(t *testing.T) {
	gw := &fakeGateway{failPaths: map[string]string{"/applications/2": "locked"}}

	items, err := newMutator(gw).DeleteMany(context.Background(), sampleItems(),
		func(id string) string { return "/applications/" + id }, []string{"1", "2", "3"})

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Contains(t, batchErr.Error(), "1 of the requested items failed")
	assert.Contains(t, batchErr.Error(), "2")

	// The failed id stays, the others are gone.
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestDeleteManyAllSucceed(t *testing.T) {
	gw := &fakeGateway{}
	items, err := newMutator(gw).DeleteMany(context.Background(), sampleItems(),
		func(id string) string { return "/applications/" + id }, []string{"1", "3"})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
	assert.False(t, errors.As(err, new(*BatchError)))
}
