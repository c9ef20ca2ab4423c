package auth

import "context"

// AuthService exposes the authentication operations.
type AuthService interface {
	// Login verifies credentials and issues the token pair. The refresh
	// token travels back in an HTTP-only cookie set by the handler.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, string, int64, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)

	// Logout revokes the presented access token.
	Logout(ctx context.Context, accessToken string) error
}
