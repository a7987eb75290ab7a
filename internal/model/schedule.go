package model

import (
	"time"

	"github.com/lib/pq"
)

// Schedule binds a playlist to a tenant over a date range, a time-of-day
// window and a weekday set. Unset bounds are open: nil dates mean the
// schedule never expires, nil times mean the whole day, an empty weekday
// set means every day. Higher priority wins at resolution time.
type Schedule struct {
	ID         int           `db:"id"           json:"id"`
	TenantID   int           `db:"tenant_id"    json:"tenant_id"`
	PlaylistID int           `db:"playlist_id"  json:"playlist_id"`
	Name       string        `db:"name"         json:"name"`
	StartDate  *time.Time    `db:"start_date"   json:"start_date,omitempty"`
	EndDate    *time.Time    `db:"end_date"     json:"end_date,omitempty"`
	StartTime  *string       `db:"start_time"   json:"start_time,omitempty"`
	EndTime    *string       `db:"end_time"     json:"end_time,omitempty"`
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week"`
	Priority   int           `db:"priority"     json:"priority"`
	IsActive   bool          `db:"is_active"    json:"is_active"`
	CreatedAt  time.Time     `db:"created_at"   json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"   json:"updated_at"`
}
