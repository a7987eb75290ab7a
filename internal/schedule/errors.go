package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

// ErrNotFound is returned when a referenced tenant, playlist or schedule
// does not exist.
var ErrNotFound = errors.New("not found")

// Violation codes emitted by the validator. Stable strings surfaced to the
// admin UI verbatim.
const (
	CodeRequired          = "required"
	CodeInvalidPriority   = "invalid_priority"
	CodeInvalidTimeFormat = "invalid_time_format"
	CodeInvalidTimeRange  = "invalid_time_range"
	CodeInvalidDuration   = "invalid_duration"
	CodePastStartDate     = "past_start_date"
	CodeInvalidDays       = "invalid_days_of_week"
)

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors carries every violation found, not just the first, so
// callers can display them all at once.
type ValidationErrors []Violation

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, violation := range v {
		msgs[i] = fmt.Sprintf("%s: %s", violation.Field, violation.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConflictError is returned when a candidate schedule overlaps existing
// schedules of the same tenant and override was not requested.
type ConflictError struct {
	Conflicts []model.Schedule
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, s := range e.Conflicts {
		ids[i] = strconv.Itoa(s.ID)
	}
	return "schedule conflicts with schedules " + strings.Join(ids, ", ")
}

// IDs returns the conflicting schedule ids for API responses.
func (e *ConflictError) IDs() []int {
	ids := make([]int, len(e.Conflicts))
	for i, s := range e.Conflicts {
		ids[i] = s.ID
	}
	return ids
}
