package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/database"
)

type sessionStore struct {
	db *database.DB
}

// NewSessionStore backs the active-session claims with Postgres so the
// one-session-per-employee invariant holds across workers and restarts.
func NewSessionStore(db *database.DB) attendance.SessionStore {
	return &sessionStore{db: db}
}

// TryOpen claims the slot with an insert that yields no row on conflict.
// The conflict path never touches the existing session.
func (s *sessionStore) TryOpen(ctx context.Context, sess attendance.Session) error {
	tag, err := s.db.Pool.Exec(ctx, `
		INSERT INTO attendance_sessions (employee_id, record_id, attendance_id, checkin_time, checkin_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id) DO NOTHING
	`, sess.EmployeeID, sess.RecordID, sess.AttendanceID, sess.CheckInTime, sess.CheckInAt)
	if err != nil {
		return fmt.Errorf("claim session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedIn
	}
	return nil
}

func (s *sessionStore) SetRecordID(ctx context.Context, employeeID, recordID string) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE attendance_sessions SET record_id = $2 WHERE employee_id = $1
	`, employeeID, recordID)
	if err != nil {
		return fmt.Errorf("attach record to session: %w", err)
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, employeeID string) (*attendance.Session, error) {
	var sess attendance.Session
	err := s.db.Pool.QueryRow(ctx, `
		SELECT employee_id, record_id, attendance_id, checkin_time, checkin_at
		FROM attendance_sessions WHERE employee_id = $1
	`, employeeID).Scan(&sess.EmployeeID, &sess.RecordID, &sess.AttendanceID, &sess.CheckInTime, &sess.CheckInAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// Close removes and returns the open session in one statement, so two
// concurrent checkouts cannot both settle the same claim.
func (s *sessionStore) Close(ctx context.Context, employeeID string) (*attendance.Session, error) {
	var sess attendance.Session
	err := s.db.Pool.QueryRow(ctx, `
		DELETE FROM attendance_sessions WHERE employee_id = $1
		RETURNING employee_id, record_id, attendance_id, checkin_time, checkin_at
	`, employeeID).Scan(&sess.EmployeeID, &sess.RecordID, &sess.AttendanceID, &sess.CheckInTime, &sess.CheckInAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, attendance.ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}
	return &sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, employeeID string) error {
	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM attendance_sessions WHERE employee_id = $1
	`, employeeID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
