package auth

// LoginRecord is one account row in the login table. PasswordHash is bcrypt
// for accounts created or rotated here; older rows may still carry a
// SHA-256 hex digest.
type LoginRecord struct {
	RecordID      string
	Username      string
	PasswordHash  string
	EmployeeName  string
	UserStatus    string // "Active" or "Locked"
	LoginAttempts int
	LastLogin     string
}

const (
	UserStatusActive = "Active"
	UserStatusLocked = "Locked"

	// MaxLoginAttempts is the failure count at which an account locks.
	MaxLoginAttempts = 3
)
