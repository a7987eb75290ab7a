package schedule

import (
	"fmt"
	"time"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

// Priority bounds for schedules. DefaultAssignmentPriority is what the
// scheduler writes on fallback (tenant default playlist) assignments.
const (
	MinPriority = 1
	MaxPriority = 10

	DefaultAssignmentPriority = 0
)

const (
	minDuration = 5 * time.Minute
	maxDuration = 24 * time.Hour
)

// ScheduleInput is the write-side shape of a schedule, before validation.
type ScheduleInput struct {
	ID         int        `json:"id,omitempty"`
	TenantID   int        `json:"tenant_id"`
	PlaylistID int        `json:"playlist_id"`
	Name       string     `json:"name"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	StartTime  *string    `json:"start_time,omitempty"`
	EndTime    *string    `json:"end_time,omitempty"`
	DaysOfWeek []int64    `json:"days_of_week,omitempty"`
	Priority   int        `json:"priority"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

// ValidateSchedule checks a candidate against every creation rule and
// returns the full violation list. An empty result means the candidate is
// acceptable.
func ValidateSchedule(in ScheduleInput, now time.Time) ValidationErrors {
	return validate(in, now, true)
}

// ValidateScheduleUpdate applies the same rules minus the past-start-date
// check, which only binds at creation time. Administrators may move an
// existing schedule's start date into the past.
func ValidateScheduleUpdate(in ScheduleInput, now time.Time) ValidationErrors {
	return validate(in, now, false)
}

func validate(in ScheduleInput, now time.Time, enforcePastDate bool) ValidationErrors {
	var errs ValidationErrors

	if in.TenantID == 0 {
		errs = append(errs, Violation{Field: "tenant_id", Code: CodeRequired, Message: "tenant is required"})
	}
	if in.PlaylistID == 0 {
		errs = append(errs, Violation{Field: "playlist_id", Code: CodeRequired, Message: "playlist is required"})
	}
	if in.Name == "" {
		errs = append(errs, Violation{Field: "name", Code: CodeRequired, Message: "name is required"})
	}

	if in.Priority < MinPriority || in.Priority > MaxPriority {
		errs = append(errs, Violation{
			Field:   "priority",
			Code:    CodeInvalidPriority,
			Message: fmt.Sprintf("priority must be between %d and %d", MinPriority, MaxPriority),
		})
	}

	// time bounds must come as a pair: "whole day" semantics only apply
	// when both are absent
	if (in.StartTime == nil) != (in.EndTime == nil) {
		field := "start_time"
		if in.StartTime != nil {
			field = "end_time"
		}
		errs = append(errs, Violation{Field: field, Code: CodeRequired, Message: "start_time and end_time must be supplied together"})
	}

	startMin, endMin := -1, -1
	if in.StartTime != nil {
		m, ok := parseClock(*in.StartTime)
		if !ok {
			errs = append(errs, Violation{Field: "start_time", Code: CodeInvalidTimeFormat, Message: "start_time must be HH:MM"})
		} else {
			startMin = m
		}
	}
	if in.EndTime != nil {
		m, ok := parseClock(*in.EndTime)
		if !ok {
			errs = append(errs, Violation{Field: "end_time", Code: CodeInvalidTimeFormat, Message: "end_time must be HH:MM"})
		} else {
			endMin = m
		}
	}

	if in.StartDate != nil && in.EndDate != nil && dateOnly(*in.EndDate).Before(dateOnly(*in.StartDate)) {
		errs = append(errs, Violation{Field: "end_date", Code: CodeInvalidTimeRange, Message: "end_date must not be before start_date"})
	}

	if startMin >= 0 && endMin >= 0 {
		errs = append(errs, checkDuration(in, startMin, endMin)...)
	}

	if enforcePastDate && in.StartDate != nil && dateOnly(*in.StartDate).Before(dateOnly(now)) {
		errs = append(errs, Violation{Field: "start_date", Code: CodePastStartDate, Message: "start_date must not be in the past"})
	}

	for _, d := range in.DaysOfWeek {
		if d < 0 || d > 6 {
			errs = append(errs, Violation{Field: "days_of_week", Code: CodeInvalidDays, Message: "days of week must be 0 (Sunday) through 6 (Saturday)"})
			break
		}
	}
	seen := make(map[int64]struct{}, len(in.DaysOfWeek))
	for _, d := range in.DaysOfWeek {
		if _, dup := seen[d]; dup {
			errs = append(errs, Violation{Field: "days_of_week", Code: CodeInvalidDays, Message: "days of week must not repeat"})
			break
		}
		seen[d] = struct{}{}
	}

	return errs
}

// checkDuration enforces the 5-minute floor and 24-hour ceiling on the
// elapsed window. A date range spanning multiple days stretches the
// elapsed time accordingly, so a Mon 10:00 to Tue 10:00 window is exactly
// 24h and passes while Mon 10:00 to Tue 10:01 fails. Within a single day
// the end must fall strictly after the start.
func checkDuration(in ScheduleInput, startMin, endMin int) ValidationErrors {
	var errs ValidationErrors

	multiDay := in.StartDate != nil && in.EndDate != nil &&
		!dateOnly(*in.EndDate).Equal(dateOnly(*in.StartDate))

	var elapsed time.Duration
	if multiDay {
		days := dateOnly(*in.EndDate).Sub(dateOnly(*in.StartDate))
		elapsed = days + time.Duration(endMin-startMin)*time.Minute
	} else {
		if endMin <= startMin {
			return ValidationErrors{{Field: "end_time", Code: CodeInvalidTimeRange, Message: "end_time must be after start_time"}}
		}
		elapsed = time.Duration(endMin-startMin) * time.Minute
	}

	if elapsed < minDuration {
		errs = append(errs, Violation{Field: "end_time", Code: CodeInvalidDuration, Message: "schedule must run for at least 5 minutes"})
	}
	if elapsed > maxDuration {
		errs = append(errs, Violation{Field: "end_time", Code: CodeInvalidDuration, Message: "schedule must not run for more than 24 hours"})
	}
	return errs
}

// apply builds a model.Schedule from validated input, defaulting the
// kill-switch to on.
func (in ScheduleInput) apply() model.Schedule {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return model.Schedule{
		ID:         in.ID,
		TenantID:   in.TenantID,
		PlaylistID: in.PlaylistID,
		Name:       in.Name,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		DaysOfWeek: in.DaysOfWeek,
		Priority:   in.Priority,
		IsActive:   active,
	}
}
