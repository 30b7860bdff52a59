package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	DateLayout    = "2006-01-02"
)

// TimeToMinutes converts "HH:MM" into minutes since midnight.
func TimeToMinutes(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, &ParseError{Field: "time", Value: hm, Reason: "expected HH:MM"}
	}

	if !isClockPart(parts[0]) {
		return 0, &ParseError{Field: "time", Value: hm, Reason: "hour is not numeric"}
	}
	if !isClockPart(parts[1]) || len(parts[1]) != 2 {
		return 0, &ParseError{Field: "time", Value: hm, Reason: "minute is not numeric"}
	}

	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])

	if h < 0 || h > 23 {
		return 0, &ParseError{Field: "time", Value: hm, Reason: "hour out of range"}
	}
	if m < 0 || m > 59 {
		return 0, &ParseError{Field: "time", Value: hm, Reason: "minute out of range"}
	}

	return h*60 + m, nil
}

// isClockPart accepts one or two ASCII digits, no sign.
func isClockPart(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeClock parses hm and returns it in canonical zero-padded form.
func NormalizeClock(hm string) (string, error) {
	m, err := TimeToMinutes(hm)
	if err != nil {
		return "", err
	}
	return MinutesToTime(m), nil
}

// MinutesToTime formats minutes since midnight as zero-padded "HH:MM".
// Values outside [0, 1440) wrap around the day, so -30 is "23:30" and
// 1470 is "00:30".
func MinutesToTime(m int) string {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps tests half-open intervals [startA, endA) and [startB, endB).
// Touching intervals do not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// ParseDate parses a civil "YYYY-MM-DD" date. The result is midnight UTC and
// only its calendar fields are meaningful.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return d, nil
}

// Weekday returns 0 (Sunday) .. 6 (Saturday) for a parsed date.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.End, o.Start, o.End)
}

// ParseInterval parses a "HH:MM"-"HH:MM" pair and requires start < end.
func ParseInterval(start, end string) (Interval, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: s, End: e}, nil
}
