package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vtab-hr/hr-backend-go/internal/config"
)

func TestThresholdsFromConfig(t *testing.T) {
	th := thresholdsFromConfig(config.AttendanceConfig{
		HalfDaySeconds: 14400,
		FullDaySeconds: 32400,
	})

	assert.Equal(t, int64(14400), th.HalfDaySeconds)
	assert.Equal(t, int64(32400), th.FullDaySeconds)
}
