package appointment

const DefaultStepMinutes = 30

type AvailabilityInput struct {
	ProviderID      uint
	Date            string
	ServiceID       uint
	DurationMinutes int
	StepMinutes     int
}

// WorkingWindow is the provider's recurring working interval for one weekday,
// in minutes since midnight. Break, when set, is blocked every such day.
type WorkingWindow struct {
	Start int
	End   int
	Break *Interval
}

// Fits reports whether iv lies inside the window and clear of the break.
func (w WorkingWindow) Fits(iv Interval) bool {
	if iv.Start < w.Start || iv.End > w.End {
		return false
	}
	if w.Break != nil && iv.Overlaps(*w.Break) {
		return false
	}
	return true
}

// Blackout is an ad-hoc unavailable window on a specific date. Start and End
// are ignored when AllDay is set.
type Blackout struct {
	AllDay bool
	Start  int
	End    int
}

func HasAllDay(blackouts []Blackout) bool {
	for _, b := range blackouts {
		if b.AllDay {
			return true
		}
	}
	return false
}

func Blocks(blackouts []Blackout, iv Interval) bool {
	for _, b := range blackouts {
		if b.AllDay || Overlaps(iv.Start, iv.End, b.Start, b.End) {
			return true
		}
	}
	return false
}
