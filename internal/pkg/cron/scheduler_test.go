package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddDailyJobFiresOnlyInWindow(t *testing.T) {
	s := NewScheduler()

	current := time.Date(2025, 6, 16, 23, 58, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	runs := 0
	s.AddDailyJob("auto_close", 23, 59, func(ctx context.Context) error {
		runs++
		return nil
	})

	ctx := context.Background()

	// Before the window: no run.
	s.RunOnce(ctx)
	assert.Equal(t, 0, runs)

	// Inside the window: exactly one run even when polled repeatedly.
	current = time.Date(2025, 6, 16, 23, 59, 5, 0, time.UTC)
	s.RunOnce(ctx)
	s.RunOnce(ctx)
	assert.Equal(t, 1, runs)

	// Next day, same window: runs again.
	current = time.Date(2025, 6, 17, 23, 59, 30, 0, time.UTC)
	s.RunOnce(ctx)
	assert.Equal(t, 2, runs)
}

func TestStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	s.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}

	s.Stop()
}
