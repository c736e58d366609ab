package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetentionPolicy_Cutoff(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	policy := NewRetentionPolicy(90)
	assert.Equal(t, now.AddDate(0, 0, -90), policy.Cutoff(now))

	weekly := NewRetentionPolicy(7)
	assert.Equal(t, now.AddDate(0, 0, -7), weekly.Cutoff(now))
}

func TestNewRetentionPolicy_DefaultsForNonPositiveDays(t *testing.T) {
	assert.Equal(t, DefaultRetentionDays, NewRetentionPolicy(0).Days)
	assert.Equal(t, DefaultRetentionDays, NewRetentionPolicy(-5).Days)
	assert.Equal(t, 30, NewRetentionPolicy(30).Days)
}
