package packets

type SignupRequest struct {
	TenantID int     `json:"tenant_id" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

// ScheduleRequest carries a candidate schedule. Field-presence rules are
// enforced by the schedule validator, not gin bindings, so the caller gets
// the complete violation list in one response. Dates are "2006-01-02",
// times "15:04".
type ScheduleRequest struct {
	PlaylistID    int     `json:"playlist_id"`
	Name          string  `json:"name"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	DaysOfWeek    []int64 `json:"days_of_week"`
	Priority      int     `json:"priority"`
	IsActive      *bool   `json:"is_active"`
	AllowOverride bool    `json:"allow_override"`
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreatePlayerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type RunSchedulerRequest struct {
	Force bool `json:"force"`
}
