package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayUsesLocalMidnight(t *testing.T) {
	trt := time.FixedZone("TRT", 3*60*60)

	// 01:30 local is still "today" locally even though UTC is on the previous day
	at := time.Date(2025, time.June, 15, 1, 30, 0, 0, trt)
	got := startOfDay(at)

	assert.True(t, got.Equal(time.Date(2025, time.June, 15, 0, 0, 0, 0, trt)))
	assert.Equal(t, trt, got.Location())

	// Truncate cuts at the UTC boundary, 03:00 local on the previous day,
	// which would sweep in yesterday evening's orders
	assert.True(t, at.Truncate(24*time.Hour).Before(got))
}

func TestStartOfDayIsIdempotent(t *testing.T) {
	trt := time.FixedZone("TRT", 3*60*60)
	midnight := time.Date(2025, time.June, 15, 0, 0, 0, 0, trt)
	assert.True(t, midnight.Equal(startOfDay(midnight)))
}
