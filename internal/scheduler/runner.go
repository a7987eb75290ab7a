// Package scheduler brings every active player's current playlist into
// agreement with the winning schedule for "now". Each run is a complete,
// stateless re-evaluation; repeated runs under unchanged conditions write
// nothing.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
	"github.com/Brightbeam-Media/lumen/internal/schedule"
)

// Store is the persistence surface the runner needs.
type Store interface {
	ListActiveTenants() ([]model.Tenant, error)
	GetTenantByID(id int) (*model.Tenant, error)
	ListSchedulesForTenant(tenantID int) ([]model.Schedule, error)
	GetDefaultPlaylist(tenantID int) (*model.Playlist, error)
	ListActivePlayers(tenantID int) ([]model.Player, error)
	GetCurrentAssignment(playerID int) (*model.PlayerPlaylist, error)
	ReplacePlayerAssignment(playerID int, assignment model.PlayerPlaylist) error
}

// Locker guards against overlapping runs for the same tenant when the job
// is triggered from multiple workers. internal/redis.RunLock implements
// it; a nil Locker disables the guard for single-binary deployments.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Publisher receives assignment-change notifications. May be nil.
type Publisher interface {
	AssignmentChanged(tenantID, playerID, playlistID int, prov model.Provenance)
}

// Options controls a single run. TenantID filters to one tenant; Force
// bypasses the no-op short-circuit for testing and debugging.
type Options struct {
	TenantID int
	Force    bool
}

// Report summarizes one run for logs and the trigger endpoint.
type Report struct {
	Tenants int `json:"tenants"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

type Runner struct {
	store   Store
	lock    Locker
	events  Publisher
	lockTTL time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

func NewRunner(store Store, lock Locker, events Publisher) *Runner {
	return &Runner{
		store:   store,
		lock:    lock,
		events:  events,
		lockTTL: 5 * time.Minute,
		now:     time.Now,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Run re-evaluates every tenant (or the one in opts) and reconciles each
// active player's assignment. Per-player and per-tenant failures are
// logged and counted but never abort the rest of the run; the external
// trigger simply retries everything on the next tick.
func (r *Runner) Run(ctx context.Context, opts Options) Report {
	var report Report

	tenants, err := r.tenants(opts)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to load tenants")
		report.Errors++
		return report
	}

	now := r.now()
	for _, tenant := range tenants {
		if ctx.Err() != nil {
			r.log.Warn().Err(ctx.Err()).Msg("run aborted; remaining tenants retry on next trigger")
			break
		}
		r.runTenant(ctx, tenant, now, opts.Force, &report)
	}

	r.log.Info().
		Int("tenants", report.Tenants).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Int("errors", report.Errors).
		Msg("scheduler run complete")
	return report
}

func (r *Runner) tenants(opts Options) ([]model.Tenant, error) {
	if opts.TenantID != 0 {
		tenant, err := r.store.GetTenantByID(opts.TenantID)
		if err != nil {
			return nil, err
		}
		return []model.Tenant{*tenant}, nil
	}
	return r.store.ListActiveTenants()
}

func (r *Runner) runTenant(ctx context.Context, tenant model.Tenant, now time.Time, force bool, report *Report) {
	logger := r.log.With().Int("tenant_id", tenant.ID).Logger()

	if r.lock != nil {
		key := fmt.Sprintf("scheduler:run:%d", tenant.ID)
		ok, err := r.lock.Acquire(ctx, key, r.lockTTL)
		if err != nil || !ok {
			logger.Warn().Err(err).Msg("tenant run already in progress, skipping")
			return
		}
		defer func() {
			if err := r.lock.Release(ctx, key); err != nil {
				logger.Error().Err(err).Msg("failed to release tenant run lock")
			}
		}()
	}

	// one snapshot of the schedule set per run, so every player in this
	// tenant resolves against the same state
	schedules, err := r.store.ListSchedulesForTenant(tenant.ID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load schedule set, skipping tenant")
		report.Errors++
		return
	}
	winner := schedule.Winner(schedules, now)

	target, err := r.target(tenant.ID, winner, now)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve target playlist, skipping tenant")
		report.Errors++
		return
	}
	report.Tenants++
	if target == nil {
		logger.Debug().Msg("no winner and no default playlist, nothing to assign")
		return
	}

	players, err := r.store.ListActivePlayers(tenant.ID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list players, skipping tenant")
		report.Errors++
		return
	}

	for _, player := range players {
		if ctx.Err() != nil {
			logger.Warn().Msg("run cancelled mid-tenant; remaining players retry on next trigger")
			return
		}
		if err := r.applyToPlayer(tenant.ID, player, *target, force, report); err != nil {
			logger.Error().Err(err).Int("player_id", player.ID).Msg("failed to apply assignment")
			report.Errors++
		}
	}
}

// target carries everything needed to write one player assignment.
func (r *Runner) target(tenantID int, winner *model.Schedule, now time.Time) (*model.PlayerPlaylist, error) {
	if winner != nil {
		return &model.PlayerPlaylist{
			PlaylistID: winner.PlaylistID,
			Priority:   winner.Priority,
			StartDate:  winner.StartDate,
			EndDate:    winner.EndDate,
			ScheduleConfig: model.Provenance{
				Kind:         model.ProvenanceSchedule,
				ScheduleID:   &winner.ID,
				ScheduleName: &winner.Name,
				AssignedAt:   now,
			},
		}, nil
	}

	fallback, err := r.store.GetDefaultPlaylist(tenantID)
	if err != nil {
		return nil, err
	}
	if fallback == nil {
		return nil, nil
	}
	return &model.PlayerPlaylist{
		PlaylistID: fallback.ID,
		Priority:   schedule.DefaultAssignmentPriority,
		ScheduleConfig: model.Provenance{
			Kind:       model.ProvenanceDefault,
			AssignedAt: now,
		},
	}, nil
}

func (r *Runner) applyToPlayer(tenantID int, player model.Player, target model.PlayerPlaylist, force bool, report *Report) error {
	current, err := r.store.GetCurrentAssignment(player.ID)
	if err != nil {
		return err
	}

	// no assignment churn and no provenance overwrite when the player is
	// already showing the target
	if !force && current != nil && current.PlaylistID == target.PlaylistID {
		report.Skipped++
		return nil
	}

	target.PlayerID = player.ID
	if err := r.store.ReplacePlayerAssignment(player.ID, target); err != nil {
		return err
	}
	report.Updated++

	if r.events != nil {
		r.events.AssignmentChanged(tenantID, player.ID, target.PlaylistID, target.ScheduleConfig)
	}
	return nil
}
