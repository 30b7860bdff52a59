package appointment

// GenerateSlots returns the ordered "HH:MM" start times at which a service of
// durationMinutes can be booked inside window. Candidates start at window.Start
// and advance by stepMinutes; one is offered iff [t, t+duration) overlaps no
// busy interval, no partial blackout and not the window's break. Any all-day
// blackout, a nil window or a duration longer than the window yields an empty
// (non-nil) slice.
//
// GenerateSlots does no I/O and never mutates its arguments.
func GenerateSlots(
	window *WorkingWindow,
	busy []Interval,
	blackouts []Blackout,
	durationMinutes int,
	stepMinutes int,
) []string {

	slots := []string{}

	if window == nil || durationMinutes <= 0 {
		return slots
	}
	if HasAllDay(blackouts) {
		return slots
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}

	last := window.End - durationMinutes
	for t := window.Start; t <= last; {
		candidate := Interval{Start: t, End: t + durationMinutes}

		free := !(window.Break != nil && candidate.Overlaps(*window.Break)) &&
			!overlapsAny(candidate, busy) &&
			!Blocks(blackouts, candidate)
		if free {
			slots = append(slots, MinutesToTime(t))
		}

		// step is caller input; never let t wrap past last.
		if stepMinutes > last-t {
			break
		}
		t += stepMinutes
	}

	return slots
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
