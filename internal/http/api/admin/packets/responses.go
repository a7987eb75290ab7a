package packets

import (
	"time"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

const dateLayout = "2006-01-02"

type ProfileResponse struct {
	ID        int     `json:"id"`
	TenantID  int     `json:"tenant_id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ScheduleResponse struct {
	ID         int     `json:"id"`
	TenantID   int     `json:"tenant_id"`
	PlaylistID int     `json:"playlist_id"`
	Name       string  `json:"name"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	DaysOfWeek []int64 `json:"days_of_week"`
	Priority   int     `json:"priority"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewScheduleResponse(s model.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		TenantID:   s.TenantID,
		PlaylistID: s.PlaylistID,
		Name:       s.Name,
		StartDate:  formatDate(s.StartDate),
		EndDate:    formatDate(s.EndDate),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		DaysOfWeek: s.DaysOfWeek,
		Priority:   s.Priority,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewScheduleResponses(list []model.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewScheduleResponse(s))
	}
	return out
}

type ValidationResponse struct {
	Valid      bool `json:"valid"`
	Violations any  `json:"violations,omitempty"`
}

type AssignmentResponse struct {
	PlaylistID int              `json:"playlist_id"`
	Priority   int              `json:"priority"`
	StartDate  *string          `json:"start_date,omitempty"`
	EndDate    *string          `json:"end_date,omitempty"`
	Provenance model.Provenance `json:"provenance"`
	AssignedAt string           `json:"assigned_at"`
}

func NewAssignmentResponse(a model.PlayerPlaylist) AssignmentResponse {
	return AssignmentResponse{
		PlaylistID: a.PlaylistID,
		Priority:   a.Priority,
		StartDate:  formatDate(a.StartDate),
		EndDate:    formatDate(a.EndDate),
		Provenance: a.ScheduleConfig,
		AssignedAt: a.AssignedAt.Format(time.RFC3339),
	}
}

type PlayerResponse struct {
	ID         int                 `json:"id"`
	DeviceID   *string             `json:"device_id,omitempty"`
	Name       string              `json:"name"`
	Location   *string             `json:"location,omitempty"`
	IsActive   bool                `json:"is_active"`
	Assignment *AssignmentResponse `json:"assignment,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
