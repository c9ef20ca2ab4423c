package dataverse

import (
	"context"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/auth"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

const (
	loginEntity   = "crc6f_hr_login_detailses"
	loginRecordID = "crc6f_hr_login_detailsid"

	lgFieldUsername      = "crc6f_username"
	lgFieldPassword      = "crc6f_password"
	lgFieldEmployeeName  = "crc6f_employeename"
	lgFieldUserStatus    = "crc6f_user_status"
	lgFieldLoginAttempts = "crc6f_loginattempts"
	lgFieldLastLogin     = "crc6f_last_login"
)

type loginRepository struct {
	api dataverse.API
}

func NewLoginRepository(api dataverse.API) auth.LoginRepository {
	return &loginRepository{api: api}
}

func (r *loginRepository) GetByUsername(ctx context.Context, username string) (*auth.LoginRecord, error) {
	records, err := r.api.Query(ctx, loginEntity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(lgFieldUsername, username),
		Top:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("query login record: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	return &auth.LoginRecord{
		RecordID:      rec.String(loginRecordID),
		Username:      rec.String(lgFieldUsername),
		PasswordHash:  rec.String(lgFieldPassword),
		EmployeeName:  rec.String(lgFieldEmployeeName),
		UserStatus:    rec.String(lgFieldUserStatus),
		LoginAttempts: int(rec.Int64(lgFieldLoginAttempts)),
		LastLogin:     rec.String(lgFieldLastLogin),
	}, nil
}

func (r *loginRepository) RecordSuccess(ctx context.Context, recordID, lastLogin string) error {
	fields := dataverse.Record{
		lgFieldLoginAttempts: 0,
		lgFieldLastLogin:     lastLogin,
		lgFieldUserStatus:    auth.UserStatusActive,
	}
	if err := r.api.Update(ctx, loginEntity, recordID, fields); err != nil {
		return fmt.Errorf("record login success: %w", err)
	}
	return nil
}

func (r *loginRepository) RecordFailure(ctx context.Context, recordID string, attempts int, status string) error {
	fields := dataverse.Record{
		lgFieldLoginAttempts: attempts,
		lgFieldUserStatus:    status,
	}
	if err := r.api.Update(ctx, loginEntity, recordID, fields); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}
