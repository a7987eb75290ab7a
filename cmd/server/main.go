package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/config"
	"github.com/Brightbeam-Media/lumen/internal/db"
	"github.com/Brightbeam-Media/lumen/internal/events"
	"github.com/Brightbeam-Media/lumen/internal/redis"
	"github.com/Brightbeam-Media/lumen/internal/schedule"
	"github.com/Brightbeam-Media/lumen/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	store := db.NewStore(nil)
	scheduleService := schedule.NewService(store)

	// Redis guards against overlapping scheduler runs across workers;
	// without it a single binary runs unguarded.
	var lock scheduler.Locker
	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		lock = redis.NewRunLock(redis.Rdb)
	}

	var publisher *events.Publisher
	if cfg.MQTTBrokerURL != "" {
		publisher, err = events.Connect(cfg.MQTTBrokerURL, "lumen-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, assignment events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	var runnerEvents scheduler.Publisher
	if publisher != nil {
		runnerEvents = publisher
	}
	runner := scheduler.NewRunner(store, lock, runnerEvents)

	if cfg.SchedulerInterval > 0 {
		go runSchedulerLoop(runner, cfg.SchedulerInterval)
	}

	r := gin.Default()
	RegisterRoutes(r, cfg, store, scheduleService, runner)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// runSchedulerLoop re-applies the winning playlist to every player on a
// fixed cadence. Each tick gets a timeout of one interval so a stuck store
// call cannot wedge the loop; anything unfinished is retried next tick.
func runSchedulerLoop(runner *scheduler.Runner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		runner.Run(ctx, scheduler.Options{})
		cancel()
	}
}
