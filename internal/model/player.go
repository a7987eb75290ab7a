package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Player represents a signage device belonging to a tenant.
type Player struct {
	ID        int       `db:"id"         json:"id"`
	TenantID  int       `db:"tenant_id"  json:"tenant_id"`
	DeviceID  *string   `db:"device_id"  json:"device_id,omitempty"`
	Name      string    `db:"name"       json:"name"`
	Location  *string   `db:"location"   json:"location,omitempty"`
	IsActive  bool      `db:"is_active"  json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ProvenanceSchedule = "schedule"
	ProvenanceDefault  = "default"
)

// Provenance records which schedule (or the tenant default) produced an
// assignment. Stored as JSONB on player_playlists.schedule_config.
type Provenance struct {
	Kind         string    `json:"kind"`
	ScheduleID   *int      `json:"schedule_id,omitempty"`
	ScheduleName *string   `json:"schedule_name,omitempty"`
	AssignedAt   time.Time `json:"assigned_at"`
}

func (p Provenance) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Provenance) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("provenance: cannot scan %T", src)
	}
}

// PlayerPlaylist is the materialized current playlist of a player. The
// scheduler replaces a player's assignment set wholesale, so at most one
// row per player carries is_current = true.
type PlayerPlaylist struct {
	ID             int        `db:"id"              json:"id"`
	PlayerID       int        `db:"player_id"       json:"player_id"`
	PlaylistID     int        `db:"playlist_id"     json:"playlist_id"`
	Priority       int        `db:"priority"        json:"priority"`
	StartDate      *time.Time `db:"start_date"      json:"start_date,omitempty"`
	EndDate        *time.Time `db:"end_date"        json:"end_date,omitempty"`
	ScheduleConfig Provenance `db:"schedule_config" json:"schedule_config"`
	IsCurrent      bool       `db:"is_current"      json:"is_current"`
	AssignedAt     time.Time  `db:"assigned_at"     json:"assigned_at"`
}
