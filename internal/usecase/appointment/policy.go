package appointment

import (
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

// Policy holds the booking rules that depend on wall-clock time.
type Policy struct {
	Location    *time.Location
	MinAdvance  time.Duration
	StepMinutes int
	Now         func() time.Time
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now().In(p.location())
	}
	return p.Now().In(p.location())
}

func (p Policy) step() int {
	if p.StepMinutes <= 0 {
		return domain.DefaultStepMinutes
	}
	return p.StepMinutes
}

// startsTooSoon reports whether minute on date begins before now+MinAdvance.
func (p Policy) startsTooSoon(date time.Time, minute int) bool {
	loc := p.location()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(minute) * time.Minute)
	return start.Before(p.now().Add(p.MinAdvance))
}
