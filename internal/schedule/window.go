package schedule

import (
	"sort"
	"time"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

// clockLayout is the wire format for time-of-day bounds ("10:00").
const clockLayout = "15:04"

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRangesOverlap reports whether two inclusive calendar-date ranges
// intersect. A nil bound is open-ended in that direction.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd *time.Time) bool {
	if aEnd != nil && bStart != nil && dateOnly(*aEnd).Before(dateOnly(*bStart)) {
		return false
	}
	if bEnd != nil && aStart != nil && dateOnly(*bEnd).Before(dateOnly(*aStart)) {
		return false
	}
	return true
}

// TimeRangesOverlap reports whether two inclusive time-of-day windows
// intersect. A nil bound is open. Windows crossing midnight are not
// modelled here; the validator rejects end <= start.
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd *string) bool {
	if aEnd != nil && bStart != nil {
		ae, ok1 := parseClock(*aEnd)
		bs, ok2 := parseClock(*bStart)
		if ok1 && ok2 && ae < bs {
			return false
		}
	}
	if bEnd != nil && aStart != nil {
		be, ok1 := parseClock(*bEnd)
		as, ok2 := parseClock(*aStart)
		if ok1 && ok2 && be < as {
			return false
		}
	}
	return true
}

// DaysOverlap reports whether two weekday sets intersect. An empty set
// means every day.
func DaysOverlap(a, b []int64) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	seen := make(map[int64]struct{}, len(a))
	for _, d := range a {
		seen[d] = struct{}{}
	}
	for _, d := range b {
		if _, ok := seen[d]; ok {
			return true
		}
	}
	return false
}

// IsActiveAt reports whether the schedule covers the given instant: the
// kill-switch is on, the date falls inside the date range, the clock falls
// inside the time window (both bounds inclusive) and the weekday is in the
// schedule's set.
func IsActiveAt(s model.Schedule, at time.Time) bool {
	if !s.IsActive {
		return false
	}

	day := dateOnly(at)
	if s.StartDate != nil && day.Before(dateOnly(*s.StartDate)) {
		return false
	}
	if s.EndDate != nil && day.After(dateOnly(*s.EndDate)) {
		return false
	}

	clock := at.Hour()*60 + at.Minute()
	if s.StartTime != nil {
		if start, ok := parseClock(*s.StartTime); ok && clock < start {
			return false
		}
	}
	if s.EndTime != nil {
		if end, ok := parseClock(*s.EndTime); ok && clock > end {
			return false
		}
	}

	if len(s.DaysOfWeek) > 0 {
		weekday := int64(at.Weekday())
		found := false
		for _, d := range s.DaysOfWeek {
			if d == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ActiveAt filters the given schedules down to those covering the instant,
// ordered by priority descending. Equal priorities tie-break on lowest
// schedule id so results stay deterministic across stores.
func ActiveAt(schedules []model.Schedule, at time.Time) []model.Schedule {
	active := make([]model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if IsActiveAt(s, at) {
			active = append(active, s)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority > active[j].Priority
		}
		return active[i].ID < active[j].ID
	})
	return active
}

// Winner returns the highest-priority schedule covering the instant, or
// nil when none is active.
func Winner(schedules []model.Schedule, at time.Time) *model.Schedule {
	active := ActiveAt(schedules, at)
	if len(active) == 0 {
		return nil
	}
	return &active[0]
}
