package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/auth"
	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/jwt"
)

type fakeLoginRepo struct {
	records map[string]*auth.LoginRecord
}

func (f *fakeLoginRepo) GetByUsername(ctx context.Context, username string) (*auth.LoginRecord, error) {
	if r, ok := f.records[username]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeLoginRepo) RecordSuccess(ctx context.Context, recordID, lastLogin string) error {
	for _, r := range f.records {
		if r.RecordID == recordID {
			r.LoginAttempts = 0
			r.LastLogin = lastLogin
			r.UserStatus = auth.UserStatusActive
		}
	}
	return nil
}

func (f *fakeLoginRepo) RecordFailure(ctx context.Context, recordID string, attempts int, status string) error {
	for _, r := range f.records {
		if r.RecordID == recordID {
			r.LoginAttempts = attempts
			r.UserStatus = status
		}
	}
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}
func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, recordID string, req employee.UpdateEmployeeRequest) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, recordID string) error { return nil }
func (f *fakeEmployeeRepo) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func newService(records map[string]*auth.LoginRecord, employees []employee.Employee) auth.AuthService {
	jwtSvc := jwt.NewJWTService("test-secret-key", "15m", "168h")
	svc := NewAuthService(&fakeLoginRepo{records: records}, &fakeEmployeeRepo{employees: employees}, jwtSvc).(*authService)
	svc.now = func() time.Time { return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestLoginSuccess(t *testing.T) {
	records := map[string]*auth.LoginRecord{
		"jdoe": {
			RecordID:     "rec-1",
			Username:     "jdoe",
			PasswordHash: bcryptHash(t, "s3cret"),
			EmployeeName: "Jordan Doe",
			UserStatus:   auth.UserStatusActive,
		},
	}
	employees := []employee.Employee{{EmployeeID: "EMP0007", Name: "Jordan Doe"}}

	svc := newService(records, employees)

	resp, refreshToken, refreshExpiresAt, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "jdoe", Password: "s3cret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Greater(t, refreshExpiresAt, int64(0))
	assert.Equal(t, "EMP0007", resp.EmployeeID)
	assert.Equal(t, "Jordan Doe", resp.EmployeeName)

	// Success resets attempts and stamps last login.
	assert.Equal(t, 0, records["jdoe"].LoginAttempts)
	assert.NotEmpty(t, records["jdoe"].LastLogin)
}

func TestLoginLegacySHA256Hash(t *testing.T) {
	records := map[string]*auth.LoginRecord{
		"legacy": {
			RecordID:     "rec-2",
			Username:     "legacy",
			PasswordHash: sha256Hex("oldpass"),
			EmployeeName: "Old Timer",
			UserStatus:   auth.UserStatusActive,
		},
	}

	svc := newService(records, nil)

	resp, _, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "legacy", Password: "oldpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPasswordLocksAfterThreeAttempts(t *testing.T) {
	records := map[string]*auth.LoginRecord{
		"jdoe": {
			RecordID:     "rec-1",
			Username:     "jdoe",
			PasswordHash: bcryptHash(t, "s3cret"),
			UserStatus:   auth.UserStatusActive,
		},
	}

	svc := newService(records, nil)
	ctx := context.Background()
	req := auth.LoginRequest{Username: "jdoe", Password: "wrong"}

	_, _, _, err := svc.Login(ctx, req)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, 1, records["jdoe"].LoginAttempts)

	_, _, _, err = svc.Login(ctx, req)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Third failure locks.
	_, _, _, err = svc.Login(ctx, req)
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
	assert.Equal(t, auth.UserStatusLocked, records["jdoe"].UserStatus)

	// Even the right password bounces off a locked account.
	_, _, _, err = svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "s3cret"})
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newService(map[string]*auth.LoginRecord{}, nil)

	_, _, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ghost", Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	records := map[string]*auth.LoginRecord{
		"jdoe": {
			RecordID:     "rec-1",
			Username:     "jdoe",
			PasswordHash: bcryptHash(t, "s3cret"),
			EmployeeName: "Jordan Doe",
			UserStatus:   auth.UserStatusActive,
		},
	}
	svc := newService(records, []employee.Employee{{EmployeeID: "EMP0007", Name: "Jordan Doe"}})
	ctx := context.Background()

	resp, refreshToken, _, err := svc.Login(ctx, auth.LoginRequest{Username: "jdoe", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.Refresh(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
