package postgresql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/database"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping session store integration tests")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM attendance_sessions WHERE employee_id LIKE 'EMPT%'`)
		db.Close()
	})
	return db
}

func TestSessionStoreClaimAndClose(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)
	ctx := context.Background()

	sess := attendance.Session{
		EmployeeID:   "EMPT001",
		AttendanceID: "ATD-TEST001",
		CheckInTime:  "09:00:00",
		CheckInAt:    time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.TryOpen(ctx, sess))

	// Second claim for the same employee conflicts without mutating state.
	err := store.TryOpen(ctx, attendance.Session{
		EmployeeID:   "EMPT001",
		AttendanceID: "ATD-TEST002",
		CheckInTime:  "10:00:00",
		CheckInAt:    time.Now().UTC(),
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	got, err := store.Get(ctx, "EMPT001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ATD-TEST001", got.AttendanceID)
	assert.Equal(t, "09:00:00", got.CheckInTime)

	require.NoError(t, store.SetRecordID(ctx, "EMPT001", "rec-123"))

	closed, err := store.Close(ctx, "EMPT001")
	require.NoError(t, err)
	assert.Equal(t, "rec-123", closed.RecordID)

	// Closing again reports no active session.
	_, err = store.Close(ctx, "EMPT001")
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestSessionStoreGetMissing(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)

	got, err := store.Get(context.Background(), "EMPT404")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreDeleteIdempotent(t *testing.T) {
	db := testDB(t)
	store := NewSessionStore(db)
	ctx := context.Background()

	require.NoError(t, store.TryOpen(ctx, attendance.Session{
		EmployeeID:   "EMPT002",
		AttendanceID: "ATD-TEST003",
		CheckInTime:  "09:00:00",
		CheckInAt:    time.Now().UTC(),
	}))

	require.NoError(t, store.Delete(ctx, "EMPT002"))
	require.NoError(t, store.Delete(ctx, "EMPT002"))

	got, err := store.Get(ctx, "EMPT002")
	require.NoError(t, err)
	assert.Nil(t, got)
}
