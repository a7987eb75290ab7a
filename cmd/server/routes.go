package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Brightbeam-Media/lumen/internal/config"
	"github.com/Brightbeam-Media/lumen/internal/db"
	"github.com/Brightbeam-Media/lumen/internal/http/api"
	adminapi "github.com/Brightbeam-Media/lumen/internal/http/api/admin/endpoints"
	playerapi "github.com/Brightbeam-Media/lumen/internal/http/api/player/endpoints"
	"github.com/Brightbeam-Media/lumen/internal/schedule"
	"github.com/Brightbeam-Media/lumen/internal/scheduler"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	store db.Store,
	scheduleService *schedule.Service,
	runner *scheduler.Runner,
) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		adminapi.ScheduleModule(scheduleService),
		adminapi.PlaylistModule(store),
		adminapi.PlayerModule(store),
		adminapi.SchedulerModule(runner, cfg.SchedulerInterval),
		adminapi.AuthSessionModule(cfg.JWTSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/player",
	},
		playerapi.SyncModule(store),
	)
}
