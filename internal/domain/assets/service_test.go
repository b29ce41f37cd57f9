package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/listquery"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/upstream"
)

type fakeGateway struct {
	collections map[string][]map[string]any
	mutateErrs  map[string]error
}

func (f *fakeGateway) FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error) {
	return f.collections[path], nil
}

func (f *fakeGateway) Post(ctx context.Context, path string, body any) error {
	return f.mutateErrs[path]
}

func (f *fakeGateway) Put(ctx context.Context, path string, body any) error {
	return f.mutateErrs[path]
}

func (f *fakeGateway) Delete(ctx context.Context, path string) error {
	return f.mutateErrs[path]
}

func assetsFixture() *fakeGateway {
	return &fakeGateway{
		collections: map[string][]map[string]any{
			"/assets": {
				{"id": "a-1", "asset_name": "MacBook Pro", "asset_code": "IT-001", "category": "Laptop", "status": "assigned"},
				{"id": "a-2", "name": "Desk 12", "status": "available"},
				{"serial_number": "PRJ-9"},
			},
		},
		mutateErrs: map[string]error{},
	}
}

func TestAssetNormalizationDefaults(t *testing.T) {
	svc := NewService(assetsFixture())

	result, err := svc.Assets(context.Background(), listquery.Query{})
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)

	assert.Equal(t, "MacBook Pro", result.Items[0].Name)
	assert.Equal(t, "IT-001", result.Items[0].Code)
	assert.Equal(t, "Untitled", result.Items[2].Name)
	assert.Equal(t, "Untitled-2", result.Items[2].ID)
	assert.Equal(t, "PRJ-9", result.Items[2].Code)
	assert.Equal(t, StatusAvailable, result.Items[2].Status)
	assert.Equal(t, ConditionGood, result.Items[2].Condition)
}

func TestAssetSearchByCode(t *testing.T) {
	svc := NewService(assetsFixture())

	result, err := svc.Assets(context.Background(), listquery.Query{Term: "it-001"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "a-1", result.Items[0].ID)
}

func TestAssetStatusMutation(t *testing.T) {
	svc := NewService(assetsFixture())

	require.NoError(t, svc.UpdateStatus(context.Background(), "a-2", StatusUnderMaintenance))

	result, err := svc.Assets(context.Background(), listquery.Query{Status: StatusUnderMaintenance})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "a-2", result.Items[0].ID)
}

func TestAssetMutationFailureKeepsSnapshot(t *testing.T) {
	gw := assetsFixture()
	gw.mutateErrs["/assets/a-1"] = &upstream.Error{Kind: upstream.KindApplication, Message: "assignment open"}
	svc := NewService(gw)

	require.Error(t, svc.Delete(context.Background(), "a-1"))

	result, err := svc.Assets(context.Background(), listquery.Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
}
