package dataverse

import (
	"context"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/asset"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

const (
	assetEntity   = "crc6f_hr_assetdetailses"
	assetRecordID = "crc6f_hr_assetdetailsid"

	asFieldAssetID      = "crc6f_assetid"
	asFieldName         = "crc6f_assetname"
	asFieldSerialNumber = "crc6f_serialnumber"
	asFieldCategory     = "crc6f_assetcategory"
	asFieldLocation     = "crc6f_location"
	asFieldStatus       = "crc6f_assetstatus"
	asFieldAssignedTo   = "crc6f_assignedto"
	asFieldEmployeeID   = "crc6f_employeeid"
	asFieldAssignedOn   = "crc6f_assignedon"
)

type assetRepository struct {
	api dataverse.API
}

func NewAssetRepository(api dataverse.API) asset.AssetRepository {
	return &assetRepository{api: api}
}

func (r *assetRepository) List(ctx context.Context) ([]asset.Asset, error) {
	records, err := r.api.Query(ctx, assetEntity, dataverse.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}

	assets := make([]asset.Asset, 0, len(records))
	for _, rec := range records {
		assets = append(assets, toAsset(rec))
	}
	return assets, nil
}

func (r *assetRepository) GetByAssetID(ctx context.Context, assetID string) (*asset.Asset, error) {
	return r.findOne(ctx, dataverse.EqFilter(asFieldAssetID, assetID), "query asset by id")
}

func (r *assetRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*asset.Asset, error) {
	return r.findOne(ctx, dataverse.EqFilter(asFieldEmployeeID, employeeID), "query asset by employee")
}

func (r *assetRepository) findOne(ctx context.Context, filter, op string) (*asset.Asset, error) {
	records, err := r.api.Query(ctx, assetEntity, dataverse.QueryOptions{
		Filter: filter,
		Top:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	a := toAsset(records[0])
	return &a, nil
}

func (r *assetRepository) Create(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	fields := dataverse.Record{
		asFieldAssetID:      a.AssetID,
		asFieldName:         a.Name,
		asFieldSerialNumber: a.SerialNumber,
		asFieldCategory:     a.Category,
		asFieldLocation:     a.Location,
		asFieldStatus:       a.Status,
		asFieldAssignedTo:   a.AssignedTo,
		asFieldEmployeeID:   a.EmployeeID,
		asFieldAssignedOn:   a.AssignedOn,
	}

	created, err := r.api.Create(ctx, assetEntity, fields)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("create asset record: %w", err)
	}

	a.RecordID = created.String(assetRecordID)
	return a, nil
}

func (r *assetRepository) Update(ctx context.Context, recordID string, req asset.UpdateAssetRequest) error {
	fields := dataverse.Record{}
	setIf := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setIf(asFieldName, req.Name)
	setIf(asFieldSerialNumber, req.SerialNumber)
	setIf(asFieldCategory, req.Category)
	setIf(asFieldLocation, req.Location)
	setIf(asFieldStatus, req.Status)
	setIf(asFieldAssignedTo, req.AssignedTo)
	setIf(asFieldEmployeeID, req.EmployeeID)
	setIf(asFieldAssignedOn, req.AssignedOn)
	if len(fields) == 0 {
		return nil
	}

	if err := r.api.Update(ctx, assetEntity, recordID, fields); err != nil {
		return fmt.Errorf("update asset record: %w", err)
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, recordID string) error {
	if err := r.api.Delete(ctx, assetEntity, recordID); err != nil {
		return fmt.Errorf("delete asset record: %w", err)
	}
	return nil
}

func toAsset(rec dataverse.Record) asset.Asset {
	return asset.Asset{
		RecordID:     rec.String(assetRecordID),
		AssetID:      rec.String(asFieldAssetID),
		Name:         rec.String(asFieldName),
		SerialNumber: rec.String(asFieldSerialNumber),
		Category:     rec.String(asFieldCategory),
		Location:     rec.String(asFieldLocation),
		Status:       rec.String(asFieldStatus),
		AssignedTo:   rec.String(asFieldAssignedTo),
		EmployeeID:   rec.String(asFieldEmployeeID),
		AssignedOn:   rec.String(asFieldAssignedOn),
	}
}
