package asset

import "context"

// AssetService exposes the equipment register.
type AssetService interface {
	List(ctx context.Context) ([]AssetResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (AssetResponse, error)
	Create(ctx context.Context, req CreateAssetRequest) (AssetResponse, error)
	Update(ctx context.Context, assetID string, req UpdateAssetRequest) (AssetResponse, error)
	Delete(ctx context.Context, assetID string) error
}
