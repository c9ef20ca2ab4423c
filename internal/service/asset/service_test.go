package asset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtab-hr/hr-backend-go/internal/domain/asset"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type fakeAssetRepo struct {
	assets map[string]*asset.Asset // keyed by AssetID
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*asset.Asset)}
}

func (f *fakeAssetRepo) List(ctx context.Context) ([]asset.Asset, error) {
	var out []asset.Asset
	for _, a := range f.assets {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssetRepo) GetByAssetID(ctx context.Context, assetID string) (*asset.Asset, error) {
	if a, ok := f.assets[assetID]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAssetRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*asset.Asset, error) {
	for _, a := range f.assets {
		if a.EmployeeID == employeeID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAssetRepo) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	a.RecordID = "rec-" + a.AssetID
	copied := a
	f.assets[a.AssetID] = &copied
	return a, nil
}

func (f *fakeAssetRepo) Update(ctx context.Context, recordID string, req asset.UpdateAssetRequest) error {
	for _, a := range f.assets {
		if a.RecordID != recordID {
			continue
		}
		if req.Status != nil {
			a.Status = *req.Status
		}
		if req.Location != nil {
			a.Location = *req.Location
		}
		if req.EmployeeID != nil {
			a.EmployeeID = *req.EmployeeID
		}
		if req.AssignedTo != nil {
			a.AssignedTo = *req.AssignedTo
		}
		return nil
	}
	return asset.ErrAssetNotFound
}

func (f *fakeAssetRepo) Delete(ctx context.Context, recordID string) error {
	for id, a := range f.assets {
		if a.RecordID == recordID {
			delete(f.assets, id)
			return nil
		}
	}
	return asset.ErrAssetNotFound
}

func laptopRequest() asset.CreateAssetRequest {
	return asset.CreateAssetRequest{
		AssetID:    "LAP-001",
		Name:       "ThinkPad T14",
		Category:   "Laptop",
		Status:     "Assigned",
		AssignedTo: "Test Person",
		EmployeeID: "EMP0001",
		AssignedOn: "2025-06-16",
	}
}

func TestCreateAsset(t *testing.T) {
	repo := newFakeAssetRepo()
	svc := NewAssetService(repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, laptopRequest())
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", resp.AssetID)
	assert.Equal(t, "EMP0001", resp.EmployeeID)
	require.Contains(t, repo.assets, "LAP-001")
}

func TestCreateAssetDuplicateID(t *testing.T) {
	repo := newFakeAssetRepo()
	svc := NewAssetService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, laptopRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, laptopRequest())
	assert.ErrorIs(t, err, asset.ErrAssetAlreadyExists)
}

func TestCreateAssetValidation(t *testing.T) {
	svc := NewAssetService(newFakeAssetRepo())

	req := laptopRequest()
	req.AssetID = ""
	req.AssignedTo = ""

	_, err := svc.Create(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "asset_id")
	assert.Contains(t, fields, "assigned_to")
}

func TestUpdateAssetByAssetID(t *testing.T) {
	repo := newFakeAssetRepo()
	svc := NewAssetService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, laptopRequest())
	require.NoError(t, err)

	status := "In Repair"
	location := "IT Store"
	resp, err := svc.Update(ctx, "LAP-001", asset.UpdateAssetRequest{
		Status:   &status,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "In Repair", resp.Status)
	assert.Equal(t, "IT Store", resp.Location)
	// Untouched fields survive the patch.
	assert.Equal(t, "ThinkPad T14", resp.Name)
}

func TestUpdateAssetNotFound(t *testing.T) {
	svc := NewAssetService(newFakeAssetRepo())

	status := "Retired"
	_, err := svc.Update(context.Background(), "LAP-404", asset.UpdateAssetRequest{Status: &status})
	assert.ErrorIs(t, err, asset.ErrAssetNotFound)
}

func TestDeleteAsset(t *testing.T) {
	repo := newFakeAssetRepo()
	svc := NewAssetService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, laptopRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "LAP-001"))
	assert.NotContains(t, repo.assets, "LAP-001")

	assert.ErrorIs(t, svc.Delete(ctx, "LAP-001"), asset.ErrAssetNotFound)
}

func TestGetAssetByEmployee(t *testing.T) {
	repo := newFakeAssetRepo()
	svc := NewAssetService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, laptopRequest())
	require.NoError(t, err)

	resp, err := svc.GetByEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", resp.AssetID)

	_, err = svc.GetByEmployee(ctx, "EMP0099")
	assert.ErrorIs(t, err, asset.ErrAssetNotFound)
}
