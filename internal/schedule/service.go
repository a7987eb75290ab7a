package schedule

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

// Store is the persistence surface the service needs. The db package's
// Store satisfies it; tests supply fakes.
type Store interface {
	CreateSchedule(s model.Schedule) (model.Schedule, error)
	GetSchedule(id int) (model.Schedule, error)
	UpdateSchedule(s model.Schedule) (model.Schedule, error)
	DeleteSchedule(id int) error
	ListSchedulesForTenant(tenantID int) ([]model.Schedule, error)
	GetPlaylistByID(id int) (model.Playlist, error)
}

// Service gates schedule writes through validation and conflict detection
// and answers "what is authoritative right now" queries. It holds no state
// between calls; every answer is re-derived from the store.
type Service struct {
	store Store
	now   func() time.Time
	log   zerolog.Logger
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		log:   log.With().Str("component", "schedule_service").Logger(),
	}
}

// Validate runs the creation rules against a candidate without touching
// the store. Used by the admin UI for pre-flight checks.
func (s *Service) Validate(in ScheduleInput) ValidationErrors {
	return ValidateSchedule(in, s.now())
}

// Create validates the candidate, rejects it when it overlaps an existing
// schedule of the same tenant, and persists it otherwise. Validation and
// conflict failures come back as typed errors, never panics.
func (s *Service) Create(in ScheduleInput) (model.Schedule, error) {
	return s.create(in, false)
}

// CreateWithOverride persists the candidate even when conflicts exist.
// The conflicting schedules are left untouched; priority arbitrates at
// resolution time.
func (s *Service) CreateWithOverride(in ScheduleInput) (model.Schedule, error) {
	return s.create(in, true)
}

func (s *Service) create(in ScheduleInput, allowOverride bool) (model.Schedule, error) {
	if errs := ValidateSchedule(in, s.now()); len(errs) > 0 {
		return model.Schedule{}, errs
	}

	candidate := in.apply()
	if err := s.checkPlaylist(candidate); err != nil {
		return model.Schedule{}, err
	}

	if !allowOverride {
		if err := s.checkConflicts(candidate); err != nil {
			return model.Schedule{}, err
		}
	}

	created, err := s.store.CreateSchedule(candidate)
	if err != nil {
		return model.Schedule{}, err
	}
	s.log.Info().
		Int("schedule_id", created.ID).
		Int("tenant_id", created.TenantID).
		Int("playlist_id", created.PlaylistID).
		Bool("override", allowOverride).
		Msg("schedule created")
	return created, nil
}

// Update re-validates the merged schedule and re-runs conflict detection
// against the tenant's other schedules. The past-start-date rule is not
// re-applied on updates.
func (s *Service) Update(id int, in ScheduleInput, allowOverride bool) (model.Schedule, error) {
	existing, err := s.store.GetSchedule(id)
	if err != nil {
		return model.Schedule{}, err
	}

	in.ID = existing.ID
	in.TenantID = existing.TenantID
	if errs := ValidateScheduleUpdate(in, s.now()); len(errs) > 0 {
		return model.Schedule{}, errs
	}

	candidate := in.apply()
	if err := s.checkPlaylist(candidate); err != nil {
		return model.Schedule{}, err
	}
	if !allowOverride {
		if err := s.checkConflicts(candidate); err != nil {
			return model.Schedule{}, err
		}
	}

	return s.store.UpdateSchedule(candidate)
}

// Delete removes a schedule from future resolution entirely. Soft
// disabling (is_active = false) goes through Update instead.
func (s *Service) Delete(id int) error {
	return s.store.DeleteSchedule(id)
}

func (s *Service) Get(id int) (model.Schedule, error) {
	return s.store.GetSchedule(id)
}

func (s *Service) List(tenantID int) ([]model.Schedule, error) {
	return s.store.ListSchedulesForTenant(tenantID)
}

// ActiveSchedulesAt returns the tenant's schedules covering the instant,
// priority descending, ties broken by lowest id.
func (s *Service) ActiveSchedulesAt(at time.Time, tenantID int) ([]model.Schedule, error) {
	all, err := s.store.ListSchedulesForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	return ActiveAt(all, at), nil
}

// WinnerAt returns the single highest-priority active schedule for the
// tenant at the instant, or nil when none is active.
func (s *Service) WinnerAt(at time.Time, tenantID int) (*model.Schedule, error) {
	all, err := s.store.ListSchedulesForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	return Winner(all, at), nil
}

func (s *Service) checkPlaylist(candidate model.Schedule) error {
	playlist, err := s.store.GetPlaylistByID(candidate.PlaylistID)
	if err != nil {
		return ErrNotFound
	}
	if playlist.TenantID != candidate.TenantID {
		return ErrNotFound
	}
	return nil
}

func (s *Service) checkConflicts(candidate model.Schedule) error {
	existing, err := s.store.ListSchedulesForTenant(candidate.TenantID)
	if err != nil {
		return err
	}
	if conflicts := FindConflicts(candidate, existing); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}
