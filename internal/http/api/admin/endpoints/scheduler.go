package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Brightbeam-Media/lumen/internal/http/api"
	"github.com/Brightbeam-Media/lumen/internal/http/api/admin/packets"
	"github.com/Brightbeam-Media/lumen/internal/model"
	"github.com/Brightbeam-Media/lumen/internal/scheduler"
)

type SchedulerController struct {
	runner     *scheduler.Runner
	runTimeout time.Duration
}

func NewSchedulerController(runner *scheduler.Runner, runTimeout time.Duration) *SchedulerController {
	if runTimeout <= 0 {
		runTimeout = time.Minute
	}
	return &SchedulerController{runner: runner, runTimeout: runTimeout}
}

// SchedulerModule exposes the application job to external triggers (cron,
// queues) and to operators debugging an assignment.
func SchedulerModule(runner *scheduler.Runner, runTimeout time.Duration) api.Module {
	ctl := NewSchedulerController(runner, runTimeout)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/scheduler/run", ctl.runScheduler)
	})
}

// POST /api/admin/scheduler/run
func (s *SchedulerController) runScheduler(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.RunSchedulerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && ctx.Request.ContentLength > 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	runCtx, cancel := context.WithTimeout(ctx.Request.Context(), s.runTimeout)
	defer cancel()

	report := s.runner.Run(runCtx, scheduler.Options{
		TenantID: user.TenantID,
		Force:    request.Force,
	})
	return report, nil
}
