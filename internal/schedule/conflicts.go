package schedule

import (
	"github.com/Brightbeam-Media/lumen/internal/model"
)

// FindConflicts returns every existing schedule whose window overlaps the
// candidate's on all three axes: date range, time-of-day range and weekday
// set. Only schedules of the same tenant can conflict; playlist identity
// is irrelevant because only one playlist can be authoritative for a
// window. The candidate itself (matching id) is skipped so updates do not
// conflict with their own row.
func FindConflicts(candidate model.Schedule, existing []model.Schedule) []model.Schedule {
	var conflicts []model.Schedule
	for _, other := range existing {
		if other.ID == candidate.ID && candidate.ID != 0 {
			continue
		}
		if other.TenantID != candidate.TenantID {
			continue
		}
		if !DateRangesOverlap(candidate.StartDate, candidate.EndDate, other.StartDate, other.EndDate) {
			continue
		}
		if !TimeRangesOverlap(candidate.StartTime, candidate.EndTime, other.StartTime, other.EndTime) {
			continue
		}
		if !DaysOverlap(candidate.DaysOfWeek, other.DaysOfWeek) {
			continue
		}
		conflicts = append(conflicts, other)
	}
	return conflicts
}
