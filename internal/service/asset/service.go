package asset

import (
	"context"
	"log/slog"

	"github.com/vtab-hr/hr-backend-go/internal/domain/asset"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type assetService struct {
	assetRepo asset.AssetRepository
}

func NewAssetService(assetRepo asset.AssetRepository) asset.AssetService {
	return &assetService{assetRepo: assetRepo}
}

func (s *assetService) List(ctx context.Context) ([]asset.AssetResponse, error) {
	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]asset.AssetResponse, 0, len(assets))
	for _, a := range assets {
		responses = append(responses, asset.ToAssetResponse(a))
	}
	return responses, nil
}

func (s *assetService) GetByEmployee(ctx context.Context, employeeID string) (asset.AssetResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return asset.AssetResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	a, err := s.assetRepo.GetByEmployeeID(ctx, normalized)
	if err != nil {
		return asset.AssetResponse{}, err
	}
	if a == nil {
		return asset.AssetResponse{}, asset.ErrAssetNotFound
	}
	return asset.ToAssetResponse(*a), nil
}

func (s *assetService) Create(ctx context.Context, req asset.CreateAssetRequest) (asset.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return asset.AssetResponse{}, err
	}

	existing, err := s.assetRepo.GetByAssetID(ctx, req.AssetID)
	if err != nil {
		return asset.AssetResponse{}, err
	}
	if existing != nil {
		return asset.AssetResponse{}, asset.ErrAssetAlreadyExists
	}

	created, err := s.assetRepo.Create(ctx, asset.Asset{
		AssetID:      req.AssetID,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Category:     req.Category,
		Location:     req.Location,
		Status:       req.Status,
		AssignedTo:   req.AssignedTo,
		EmployeeID:   req.EmployeeID,
		AssignedOn:   req.AssignedOn,
	})
	if err != nil {
		return asset.AssetResponse{}, err
	}

	slog.Info("Asset created", "asset_id", created.AssetID, "employee_id", created.EmployeeID)
	return asset.ToAssetResponse(created), nil
}

func (s *assetService) Update(ctx context.Context, assetID string, req asset.UpdateAssetRequest) (asset.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return asset.AssetResponse{}, err
	}

	existing, err := s.assetRepo.GetByAssetID(ctx, assetID)
	if err != nil {
		return asset.AssetResponse{}, err
	}
	if existing == nil {
		return asset.AssetResponse{}, asset.ErrAssetNotFound
	}

	if err := s.assetRepo.Update(ctx, existing.RecordID, req); err != nil {
		return asset.AssetResponse{}, err
	}

	updated, err := s.assetRepo.GetByAssetID(ctx, assetID)
	if err != nil || updated == nil {
		// The patch landed; fall back to the pre-patch view rather than
		// failing the request on the re-read.
		slog.Warn("Re-read after asset update failed", "asset_id", assetID, "error", err)
		return asset.ToAssetResponse(*existing), nil
	}

	slog.Info("Asset updated", "asset_id", assetID)
	return asset.ToAssetResponse(*updated), nil
}

func (s *assetService) Delete(ctx context.Context, assetID string) error {
	existing, err := s.assetRepo.GetByAssetID(ctx, assetID)
	if err != nil {
		return err
	}
	if existing == nil {
		return asset.ErrAssetNotFound
	}

	if err := s.assetRepo.Delete(ctx, existing.RecordID); err != nil {
		return err
	}

	slog.Info("Asset deleted", "asset_id", assetID)
	return nil
}
