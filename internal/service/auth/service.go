package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/auth"
	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/jwt"
)

type authService struct {
	loginRepo    auth.LoginRepository
	employeeRepo employee.EmployeeRepository
	jwtSvc       jwt.Service
	now          func() time.Time
}

func NewAuthService(loginRepo auth.LoginRepository, employeeRepo employee.EmployeeRepository, jwtSvc jwt.Service) auth.AuthService {
	return &authService{
		loginRepo:    loginRepo,
		employeeRepo: employeeRepo,
		jwtSvc:       jwtSvc,
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	record, err := s.loginRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return auth.LoginResponse{}, "", 0, err
	}
	if record == nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	if strings.EqualFold(record.UserStatus, auth.UserStatusLocked) {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountLocked
	}

	if !verifyPassword(record.PasswordHash, req.Password) {
		attempts := record.LoginAttempts + 1
		status := record.UserStatus
		if attempts >= auth.MaxLoginAttempts {
			status = auth.UserStatusLocked
		}
		if failErr := s.loginRepo.RecordFailure(ctx, record.RecordID, attempts, status); failErr != nil {
			slog.Error("Failed to record login failure",
				"username", req.Username, "error", failErr)
		}
		if status == auth.UserStatusLocked {
			slog.Warn("Account locked after repeated failures", "username", req.Username)
			return auth.LoginResponse{}, "", 0, auth.ErrAccountLocked
		}
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	lastLogin := s.now().UTC().Format(time.RFC3339)
	if err := s.loginRepo.RecordSuccess(ctx, record.RecordID, lastLogin); err != nil {
		slog.Error("Failed to stamp last login", "username", req.Username, "error", err)
	}

	employeeID := s.resolveEmployeeID(ctx, record.EmployeeName)

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(employeeID, record.Username, record.EmployeeName)
	if err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtSvc.GenerateRefreshToken(employeeID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	slog.Info("Login succeeded", "username", record.Username, "employee_id", employeeID)

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		EmployeeID:   employeeID,
		EmployeeName: record.EmployeeName,
		Username:     record.Username,
	}, refreshToken, refreshExpiresAt, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtSvc.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	token, err := s.jwtSvc.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	if typ, ok := token.Get("type"); !ok || typ != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	employeeID := ""
	if v, ok := token.Get("employee_id"); ok {
		employeeID, _ = v.(string)
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(employeeID, "", "")
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	return auth.RefreshResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	s.jwtSvc.RevokeToken(accessToken)
	return nil
}

// resolveEmployeeID maps the login record's display name to the canonical
// employee ID through the master. Best-effort: a miss leaves the claim
// empty rather than failing the login.
func (s *authService) resolveEmployeeID(ctx context.Context, employeeName string) string {
	if employeeName == "" {
		return ""
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		slog.Warn("Could not resolve employee ID from master", "error", err)
		return ""
	}

	needle := strings.ToLower(strings.TrimSpace(employeeName))
	for _, e := range employees {
		if strings.ToLower(strings.TrimSpace(e.Name)) == needle {
			return e.EmployeeID
		}
	}
	return ""
}

// verifyPassword accepts bcrypt hashes and, for accounts predating the
// rotation, bare SHA-256 hex digests.
func verifyPassword(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(digest)) == 1
}
