package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

func mondayWindow(id, tenantID, priority int, start, end string) model.Schedule {
	return model.Schedule{
		ID:         id,
		TenantID:   tenantID,
		PlaylistID: id,
		Name:       "window",
		StartTime:  strPtr(start),
		EndTime:    strPtr(end),
		DaysOfWeek: []int64{1},
		Priority:   priority,
		IsActive:   true,
	}
}

func TestFindConflictsOverlappingWindows(t *testing.T) {
	existing := mondayWindow(1, 1, 3, "10:00", "12:00")
	candidate := mondayWindow(0, 1, 2, "11:00", "13:00")

	conflicts := FindConflicts(candidate, []model.Schedule{existing})
	assert.Len(t, conflicts, 1)
	assert.Equal(t, 1, conflicts[0].ID)
}

func TestFindConflictsSymmetry(t *testing.T) {
	a := mondayWindow(1, 1, 3, "10:00", "12:00")
	b := mondayWindow(2, 1, 2, "11:00", "13:00")

	assert.Len(t, FindConflicts(a, []model.Schedule{b}), 1)
	assert.Len(t, FindConflicts(b, []model.Schedule{a}), 1)
}

func TestFindConflictsIgnoresOtherTenants(t *testing.T) {
	candidate := mondayWindow(0, 1, 3, "10:00", "12:00")
	otherTenant := mondayWindow(5, 2, 3, "10:00", "12:00")

	assert.Empty(t, FindConflicts(candidate, []model.Schedule{otherTenant}))
}

func TestFindConflictsDisjointAxes(t *testing.T) {
	candidate := mondayWindow(0, 1, 3, "10:00", "12:00")

	tuesdayOnly := mondayWindow(2, 1, 3, "10:00", "12:00")
	tuesdayOnly.DaysOfWeek = []int64{2}
	assert.Empty(t, FindConflicts(candidate, []model.Schedule{tuesdayOnly}), "disjoint weekdays")

	evening := mondayWindow(3, 1, 3, "18:00", "20:00")
	assert.Empty(t, FindConflicts(candidate, []model.Schedule{evening}), "disjoint time windows")

	past := mondayWindow(4, 1, 3, "10:00", "12:00")
	past.StartDate = datePtr(2025, 1, 1)
	past.EndDate = datePtr(2025, 1, 31)
	candidate.StartDate = datePtr(2025, 9, 1)
	candidate.EndDate = datePtr(2025, 9, 30)
	assert.Empty(t, FindConflicts(candidate, []model.Schedule{past}), "disjoint date ranges")
}

func TestFindConflictsDifferentPlaylistsStillConflict(t *testing.T) {
	existing := mondayWindow(1, 1, 3, "10:00", "12:00")
	candidate := mondayWindow(0, 1, 2, "10:00", "12:00")
	candidate.PlaylistID = 42

	assert.Len(t, FindConflicts(candidate, []model.Schedule{existing}), 1,
		"only one playlist can be authoritative for a window")
}

func TestFindConflictsSkipsSelf(t *testing.T) {
	existing := mondayWindow(1, 1, 3, "10:00", "12:00")

	// updating schedule 1 must not conflict with its own stored row
	updated := existing
	updated.StartTime = strPtr("10:30")
	assert.Empty(t, FindConflicts(updated, []model.Schedule{existing}))
}
