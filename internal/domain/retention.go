package domain

import "time"

// DefaultRetentionDays bounds how far back the admin inbox reaches.
const DefaultRetentionDays = 90

// RetentionPolicy computes the visibility window for admin listings.
// It does not delete anything; messages older than the window simply
// stop appearing through the listing path.
type RetentionPolicy struct {
	Days int
}

// NewRetentionPolicy builds a policy, falling back to the default
// window for non-positive day counts.
func NewRetentionPolicy(days int) RetentionPolicy {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return RetentionPolicy{Days: days}
}

// Cutoff returns the oldest creation time still visible at the given
// moment.
func (p RetentionPolicy) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.Days)
}
