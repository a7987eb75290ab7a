package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

const scheduleColumns = `
	id, tenant_id, playlist_id, name,
	start_date, end_date, start_time, end_time,
	days_of_week, priority, is_active, created_at, updated_at`

func (p *pgStore) CreateSchedule(s model.Schedule) (model.Schedule, error) {
	var out model.Schedule
	const q = `
	INSERT INTO schedules
	  (tenant_id, playlist_id, name, start_date, end_date, start_time, end_time,
	   days_of_week, priority, is_active, created_at, updated_at)
	VALUES
	  ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	RETURNING` + scheduleColumns + `;`
	if err := p.db.Get(&out, q,
		s.TenantID, s.PlaylistID, s.Name,
		s.StartDate, s.EndDate, s.StartTime, s.EndTime,
		pq.Int64Array(s.DaysOfWeek), s.Priority, s.IsActive,
	); err != nil {
		log.Error().Err(err).Int("tenant_id", s.TenantID).Msg("failed to create schedule")
		return model.Schedule{}, err
	}
	return out, nil
}

func (p *pgStore) GetSchedule(id int) (model.Schedule, error) {
	var s model.Schedule
	if err := p.db.Get(&s, `SELECT`+scheduleColumns+` FROM schedules WHERE id = $1;`, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("schedule_id", id).Msg("failed to get schedule")
		}
		return model.Schedule{}, err
	}
	return s, nil
}

func (p *pgStore) UpdateSchedule(s model.Schedule) (model.Schedule, error) {
	var out model.Schedule
	const q = `
	UPDATE schedules
	   SET playlist_id  = $2,
	       name         = $3,
	       start_date   = $4,
	       end_date     = $5,
	       start_time   = $6,
	       end_time     = $7,
	       days_of_week = $8,
	       priority     = $9,
	       is_active    = $10,
	       updated_at   = now()
	 WHERE id = $1
	RETURNING` + scheduleColumns + `;`
	if err := p.db.Get(&out, q,
		s.ID, s.PlaylistID, s.Name,
		s.StartDate, s.EndDate, s.StartTime, s.EndTime,
		pq.Int64Array(s.DaysOfWeek), s.Priority, s.IsActive,
	); err != nil {
		log.Error().Err(err).Int("schedule_id", s.ID).Msg("failed to update schedule")
		return model.Schedule{}, err
	}
	return out, nil
}

func (p *pgStore) DeleteSchedule(id int) error {
	_, err := p.db.Exec(`DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("failed to delete schedule")
	}
	return err
}

func (p *pgStore) ListSchedulesForTenant(tenantID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT` + scheduleColumns + `
	  FROM schedules
	 WHERE tenant_id = $1
	 ORDER BY priority DESC, id;`
	if err := p.db.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to list schedules")
		return nil, err
	}
	return out, nil
}
