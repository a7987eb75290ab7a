package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Brightbeam-Media/lumen/internal/http/api"
	"github.com/Brightbeam-Media/lumen/internal/http/api/admin/packets"
	"github.com/Brightbeam-Media/lumen/internal/model"
	"github.com/Brightbeam-Media/lumen/internal/schedule"
)

const dateLayout = "2006-01-02"

type ScheduleController struct {
	service *schedule.Service
}

func NewScheduleController(service *schedule.Service) *ScheduleController {
	return &ScheduleController{service: service}
}

func ScheduleModule(service *schedule.Service) api.Module {
	ctl := NewScheduleController(service)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.POST("/schedules/validate", ctl.validateSchedule)

		// diagnostic queries: what would be shown at a given instant
		c.GET("/schedules/active", ctl.listActiveSchedules)
		c.GET("/schedules/winner", ctl.getWinner)

		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.service.List(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}
	return packets.NewScheduleResponses(list), nil
}

func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	input, apiErr := scheduleInput(request, user.TenantID)
	if apiErr != nil {
		return nil, apiErr
	}

	var created model.Schedule
	var err error
	if request.AllowOverride {
		created, err = s.service.CreateWithOverride(input)
	} else {
		created, err = s.service.Create(input)
	}
	if err != nil {
		return nil, scheduleError(err)
	}
	return packets.NewScheduleResponse(created), nil
}

func (s *ScheduleController) validateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	input, apiErr := scheduleInput(request, user.TenantID)
	if apiErr != nil {
		return nil, apiErr
	}

	violations := s.service.Validate(input)
	response := packets.ValidationResponse{Valid: len(violations) == 0}
	if len(violations) > 0 {
		response.Violations = violations
	}
	return response, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	owned, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewScheduleResponse(*owned), nil
}

func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	owned, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	input, inputErr := scheduleInput(request, user.TenantID)
	if inputErr != nil {
		return nil, inputErr
	}

	updated, err := s.service.Update(owned.ID, input, request.AllowOverride)
	if err != nil {
		return nil, scheduleError(err)
	}
	return packets.NewScheduleResponse(updated), nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	owned, apiErr := s.ownedSchedule(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.service.Delete(owned.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}
	return gin.H{"message": "deleted"}, nil
}

// GET /schedules/active?at=RFC3339 (defaults to now)
func (s *ScheduleController) listActiveSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	at, apiErr := instantParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	active, err := s.service.ActiveSchedulesAt(at, user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to resolve active schedules"}
	}
	return packets.NewScheduleResponses(active), nil
}

// GET /schedules/winner?at=RFC3339 (defaults to now)
func (s *ScheduleController) getWinner(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	at, apiErr := instantParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	winner, err := s.service.WinnerAt(at, user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to resolve winner"}
	}
	if winner == nil {
		return gin.H{"winner": nil}, nil
	}
	return gin.H{"winner": packets.NewScheduleResponse(*winner)}, nil
}

func (s *ScheduleController) ownedSchedule(ctx *gin.Context, user *model.User) (*model.Schedule, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	owned, err := s.service.Get(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if owned.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return &owned, nil
}

func scheduleInput(request packets.ScheduleRequest, tenantID int) (schedule.ScheduleInput, *api.APIError) {
	startDate, err := parseDate(request.StartDate)
	if err != nil {
		return schedule.ScheduleInput{}, &api.APIError{Code: http.StatusBadRequest, Message: "start_date must be YYYY-MM-DD"}
	}
	endDate, err := parseDate(request.EndDate)
	if err != nil {
		return schedule.ScheduleInput{}, &api.APIError{Code: http.StatusBadRequest, Message: "end_date must be YYYY-MM-DD"}
	}

	return schedule.ScheduleInput{
		TenantID:   tenantID,
		PlaylistID: request.PlaylistID,
		Name:       request.Name,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		DaysOfWeek: request.DaysOfWeek,
		Priority:   request.Priority,
		IsActive:   request.IsActive,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func instantParam(ctx *gin.Context) (time.Time, *api.APIError) {
	raw := ctx.Query("at")
	if raw == "" {
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "at must be RFC3339"}
	}
	return at, nil
}

// scheduleError maps service errors onto the API envelope: validation
// failures are 422 with the full violation list, conflicts are 409 with
// the conflicting schedule ids.
func scheduleError(err error) *api.APIError {
	var verrs schedule.ValidationErrors
	if errors.As(err, &verrs) {
		return &api.APIError{Code: http.StatusUnprocessableEntity, Message: "validation failed", Details: verrs}
	}

	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		return &api.APIError{
			Code:    http.StatusConflict,
			Message: "schedule conflicts with existing schedules",
			Details: gin.H{"conflicting_schedule_ids": conflict.IDs()},
		}
	}

	if errors.Is(err, schedule.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	return &api.APIError{Code: http.StatusInternalServerError, Message: "could not save schedule"}
}
