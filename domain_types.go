package inferschema

import (
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// TimeOfDay is a clock reading with an optional location. A nil Location is
// naive and is treated as UTC wherever an offset is needed.
type TimeOfDay struct {
	Clock    civil.Time
	Location *time.Location
}

// TimeOfDayOf returns the clock reading and location of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Clock: civil.TimeOf(t), Location: t.Location()}
}

// referenceDate anchors clock readings when an offset must be resolved.
var referenceDate = civil.Date{Year: 2000, Month: time.January, Day: 1}

// On places the clock reading on date d.
func (t TimeOfDay) On(d civil.Date) time.Time {
	loc := t.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, t.Clock.Hour, t.Clock.Minute, t.Clock.Second, t.Clock.Nanosecond, loc)
}

// IsNaive reports whether t carries no location.
func (t TimeOfDay) IsNaive() bool { return t.Location == nil }

// Equal reports whether t and u have the same clock reading and UTC offset.
func (t TimeOfDay) Equal(u TimeOfDay) bool {
	return t.Clock == u.Clock && t.offset() == u.offset()
}

func (t TimeOfDay) offset() int {
	_, off := t.On(referenceDate).Zone()
	return off
}

func (t TimeOfDay) String() string {
	if t.IsNaive() {
		return t.Clock.String()
	}
	return t.On(referenceDate).Format("15:04:05.999999999Z07:00")
}

// MarshalText renders t like String so JSON output stays readable.
func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// IntRange is the integer range shorthand: Start inclusive, Stop exclusive.
// A zero Step counts by one.
type IntRange struct {
	Start, Stop, Step int64
}

// Values materializes the range. Iteration stops before a step would overflow
// int64.
func (r IntRange) Values() []int64 {
	step := r.Step
	if step == 0 {
		step = 1
	}
	out := []int64{}
	if step > 0 {
		for v := r.Start; v < r.Stop; v += step {
			out = append(out, v)
			if v > math.MaxInt64-step {
				break
			}
		}
		return out
	}
	for v := r.Start; v > r.Stop; v += step {
		out = append(out, v)
		if v < math.MinInt64-step {
			break
		}
	}
	return out
}
