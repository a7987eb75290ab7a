package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

func (p *pgStore) CreatePlayer(tenantID int, name string, location *string) (model.Player, error) {
	var pl model.Player
	const q = `
	INSERT INTO players (tenant_id, name, location, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, tenant_id, device_id, name, location, is_active, created_at, updated_at;
	`
	if err := p.db.Get(&pl, q, tenantID, name, location); err != nil {
		log.Error().Err(err).Msg("failed to create player")
		return model.Player{}, err
	}
	return pl, nil
}

func (p *pgStore) GetPlayerByID(id int) (model.Player, error) {
	var pl model.Player
	const q = `
	SELECT id, tenant_id, device_id, name, location, is_active, created_at, updated_at
	FROM players
	WHERE id = $1;
	`
	if err := p.db.Get(&pl, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("player_id", id).Msg("failed to get player")
		}
		return model.Player{}, err
	}
	return pl, nil
}

func (p *pgStore) GetPlayerByDeviceID(deviceID string) (model.Player, error) {
	var pl model.Player
	const q = `
	SELECT id, tenant_id, device_id, name, location, is_active, created_at, updated_at
	FROM players
	WHERE device_id = $1;
	`
	if err := p.db.Get(&pl, q, deviceID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Str("device_id", deviceID).Msg("failed to get player by device id")
		}
		return model.Player{}, err
	}
	return pl, nil
}

func (p *pgStore) ListActivePlayers(tenantID int) ([]model.Player, error) {
	var out []model.Player
	const q = `
	SELECT id, tenant_id, device_id, name, location, is_active, created_at, updated_at
	  FROM players
	 WHERE tenant_id = $1 AND is_active = true
	 ORDER BY id;
	`
	if err := p.db.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to list active players")
		return nil, err
	}
	return out, nil
}

// GetCurrentAssignment returns nil, nil when the player has no current
// assignment.
func (p *pgStore) GetCurrentAssignment(playerID int) (*model.PlayerPlaylist, error) {
	var a model.PlayerPlaylist
	const q = `
	SELECT id, player_id, playlist_id, priority, start_date, end_date,
	       schedule_config, is_current, assigned_at
	  FROM player_playlists
	 WHERE player_id = $1 AND is_current = true;
	`
	if err := p.db.Get(&a, q, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("player_id", playerID).Msg("failed to get current assignment")
		return nil, err
	}
	return &a, nil
}

// ReplacePlayerAssignment replaces the player's assignment set with
// exactly one entry in a single transaction, so a concurrent run cannot
// interleave a partial update.
func (p *pgStore) ReplacePlayerAssignment(playerID int, assignment model.PlayerPlaylist) error {
	tx, err := p.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM player_playlists WHERE player_id = $1;`, playerID); err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("failed to clear player assignments")
		return err
	}

	if _, err = tx.Exec(`
		INSERT INTO player_playlists
		  (player_id, playlist_id, priority, start_date, end_date, schedule_config, is_current, assigned_at)
		VALUES
		  ($1, $2, $3, $4, $5, $6, true, now());`,
		playerID,
		assignment.PlaylistID,
		assignment.Priority,
		assignment.StartDate,
		assignment.EndDate,
		assignment.ScheduleConfig,
	); err != nil {
		log.Error().Err(err).Int("player_id", playerID).Msg("failed to insert player assignment")
		return err
	}

	return tx.Commit()
}
