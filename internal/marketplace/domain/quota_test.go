package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeSeller(count int, lastReset time.Time) *User {
	return &User{
		ID:                   "seller-1",
		PublicationCount:     count,
		PublicationLimit:     50,
		LastPublicationReset: lastReset,
	}
}

func TestEvaluateQuota_WithinPeriodUnderLimit(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	u := makeSeller(10, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	d := EvaluateQuota(u, now)

	assert.True(t, d.Eligible)
	assert.False(t, d.Rollover)
	assert.Empty(t, d.Reason)
	assert.Equal(t, 10, d.Count)
	assert.Equal(t, 50, d.Limit)
}

func TestEvaluateQuota_IdempotentWithinPeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	u := makeSeller(10, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	first := EvaluateQuota(u, now)
	second := EvaluateQuota(u, now.Add(2*time.Hour))

	assert.Equal(t, first, second)
}

func TestEvaluateQuota_RolloverOnNewMonth(t *testing.T) {
	u := makeSeller(50, time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.April, 1, 0, 0, 1, 0, time.UTC)

	d := EvaluateQuota(u, now)

	assert.True(t, d.Eligible)
	assert.True(t, d.Rollover)
	assert.Empty(t, d.Reason)
	assert.Equal(t, 0, d.Count)
}

func TestEvaluateQuota_RolloverOnNewYearSameMonth(t *testing.T) {
	// March 2024 -> March 2025 is a different period even though the month
	// number matches.
	u := makeSeller(50, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	d := EvaluateQuota(u, now)

	assert.True(t, d.Eligible)
	assert.True(t, d.Rollover)
}

func TestEvaluateQuota_NoRolloverWithinSameMonth(t *testing.T) {
	u := makeSeller(3, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)

	d := EvaluateQuota(u, now)

	assert.False(t, d.Rollover)
	assert.Equal(t, 3, d.Count)
}

func TestEvaluateQuota_LimitReached(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	u := makeSeller(50, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	d := EvaluateQuota(u, now)

	assert.False(t, d.Eligible)
	assert.Contains(t, d.Reason, "50")
	assert.Contains(t, d.Reason, "limit reached")
	assert.Equal(t, 50, d.Count)
	assert.Equal(t, 50, d.Limit)
}

func TestEvaluateQuota_OneBelowLimit(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	u := makeSeller(49, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	d := EvaluateQuota(u, now)

	assert.True(t, d.Eligible)
	assert.Equal(t, 49, d.Count)
}

func TestEvaluateQuota_DefaultLimitWhenUnset(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	u := makeSeller(0, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	u.PublicationLimit = 0

	d := EvaluateQuota(u, now)

	assert.True(t, d.Eligible)
	assert.Equal(t, DefaultPublicationLimit, d.Limit)
}
