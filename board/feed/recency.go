package feed

import (
	"time"
)

// DefaultDays is the day window used when none is given.
const DefaultDays = 30

// Recency computes lower time bounds for feed reads.
type Recency struct {
	defaultDays int
	now         func() time.Time
}

func NewRecency(defaultDays int, now func() time.Time) Recency {
	if defaultDays <= 0 {
		defaultDays = DefaultDays
	}
	if now == nil {
		now = time.Now
	}
	return Recency{defaultDays: defaultDays, now: now}
}

// Cutoff returns now minus the given days. Non positive days use the default.
func (r Recency) Cutoff(days int) time.Time {
	if days <= 0 {
		days = r.defaultDays
	}
	return r.now().Add(-time.Duration(days) * 24 * time.Hour)
}

// Days returns the window keeping everything created at or after the cutoff.
func (r Recency) Days(days int) Window {
	return Window{Since: r.Cutoff(days), Inclusive: true}
}

// Watermark returns the window keeping everything created after a check.
// A zero watermark keeps everything.
func Watermark(t time.Time) Window {
	return Window{Since: t}
}

type Window struct {
	Since     time.Time
	Inclusive bool
}

func (w Window) Keep(created time.Time) bool {
	if w.Since.IsZero() {
		return true
	}
	if w.Inclusive && created.Equal(w.Since) {
		return true
	}
	return created.After(w.Since)
}
