package asset

import "context"

// AssetRepository reads and writes asset rows in the record store.
type AssetRepository interface {
	List(ctx context.Context) ([]Asset, error)
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*Asset, error)
	Create(ctx context.Context, a Asset) (Asset, error)
	Update(ctx context.Context, recordID string, req UpdateAssetRequest) error
	Delete(ctx context.Context, recordID string) error
}
