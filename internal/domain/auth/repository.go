package auth

import "context"

// LoginRepository is the record-store access contract for account rows.
type LoginRepository interface {
	// GetByUsername returns the account row, nil when none.
	GetByUsername(ctx context.Context, username string) (*LoginRecord, error)

	// RecordSuccess resets the attempt counter and stamps the last login.
	RecordSuccess(ctx context.Context, recordID, lastLogin string) error

	// RecordFailure stores the new attempt count, flipping the status when
	// the lockout threshold is reached.
	RecordFailure(ctx context.Context, recordID string, attempts int, status string) error
}
