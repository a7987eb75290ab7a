package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// 2025-09-01 is a Monday.
var (
	monday  = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestDateRangesOverlap(t *testing.T) {
	assert.True(t, DateRangesOverlap(nil, nil, nil, nil), "two unbounded ranges always overlap")
	assert.True(t, DateRangesOverlap(datePtr(2025, 9, 1), datePtr(2025, 9, 10), datePtr(2025, 9, 10), datePtr(2025, 9, 20)),
		"inclusive bounds: touching ranges overlap")
	assert.False(t, DateRangesOverlap(datePtr(2025, 9, 1), datePtr(2025, 9, 9), datePtr(2025, 9, 10), datePtr(2025, 9, 20)))
	assert.True(t, DateRangesOverlap(nil, datePtr(2025, 9, 15), datePtr(2025, 9, 10), nil), "open-ended bounds")
	assert.False(t, DateRangesOverlap(nil, datePtr(2025, 9, 9), datePtr(2025, 9, 10), nil))
}

func TestTimeRangesOverlap(t *testing.T) {
	assert.True(t, TimeRangesOverlap(nil, nil, nil, nil))
	assert.True(t, TimeRangesOverlap(strPtr("10:00"), strPtr("12:00"), strPtr("11:00"), strPtr("13:00")))
	assert.True(t, TimeRangesOverlap(strPtr("10:00"), strPtr("12:00"), strPtr("12:00"), strPtr("13:00")),
		"inclusive bounds: touching windows overlap")
	assert.False(t, TimeRangesOverlap(strPtr("10:00"), strPtr("11:59"), strPtr("12:00"), strPtr("13:00")))
	assert.True(t, TimeRangesOverlap(strPtr("10:00"), nil, nil, strPtr("10:30")), "half-open windows")
}

func TestDaysOverlap(t *testing.T) {
	assert.True(t, DaysOverlap(nil, nil), "empty set means every day")
	assert.True(t, DaysOverlap([]int64{1}, nil))
	assert.True(t, DaysOverlap([]int64{1, 3}, []int64{3, 5}))
	assert.False(t, DaysOverlap([]int64{1, 3}, []int64{2, 4}))
}

func TestIsActiveAt(t *testing.T) {
	// Monday 10:00-12:00
	s := model.Schedule{
		ID:         1,
		TenantID:   1,
		PlaylistID: 1,
		Name:       "monday morning",
		StartTime:  strPtr("10:00"),
		EndTime:    strPtr("12:00"),
		DaysOfWeek: []int64{1},
		Priority:   3,
		IsActive:   true,
	}

	assert.True(t, IsActiveAt(s, at(monday, 11, 0)))
	assert.False(t, IsActiveAt(s, at(tuesday, 11, 0)))
	assert.True(t, IsActiveAt(s, at(monday, 12, 0)), "end bound is inclusive")
	assert.False(t, IsActiveAt(s, at(monday, 12, 1)))
	assert.False(t, IsActiveAt(s, at(monday, 9, 59)))

	s.IsActive = false
	assert.False(t, IsActiveAt(s, at(monday, 11, 0)), "kill-switch overrides the window")
}

func TestIsActiveAtDateRange(t *testing.T) {
	s := model.Schedule{
		ID:        2,
		IsActive:  true,
		StartDate: datePtr(2025, 9, 1),
		EndDate:   datePtr(2025, 9, 2),
	}

	assert.True(t, IsActiveAt(s, at(monday, 23, 59)))
	assert.True(t, IsActiveAt(s, at(tuesday, 0, 0)))
	assert.False(t, IsActiveAt(s, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsActiveAt(s, time.Date(2025, 8, 31, 23, 59, 0, 0, time.UTC)))
}

func TestActiveAtOrdering(t *testing.T) {
	mk := func(id, priority int) model.Schedule {
		return model.Schedule{ID: id, TenantID: 1, Priority: priority, IsActive: true}
	}

	active := ActiveAt([]model.Schedule{mk(3, 2), mk(1, 5), mk(2, 5), mk(4, 9)}, at(monday, 11, 0))

	ids := make([]int, len(active))
	for i, s := range active {
		ids[i] = s.ID
	}
	assert.Equal(t, []int{4, 1, 2, 3}, ids, "priority descending, equal priorities by lowest id")
}

func TestWinner(t *testing.T) {
	s1 := model.Schedule{ID: 1, TenantID: 1, Priority: 5, IsActive: true, StartTime: strPtr("10:00"), EndTime: strPtr("12:00")}
	s2 := model.Schedule{ID: 2, TenantID: 1, Priority: 2, IsActive: true, StartTime: strPtr("10:00"), EndTime: strPtr("12:00")}

	winner := Winner([]model.Schedule{s2, s1}, at(monday, 11, 0))
	assert.NotNil(t, winner)
	assert.Equal(t, 1, winner.ID)

	assert.Nil(t, Winner([]model.Schedule{s1, s2}, at(monday, 13, 0)), "no schedule covers the instant")
	assert.Nil(t, Winner(nil, at(monday, 11, 0)))
}
