package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

func (p *pgStore) CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error) {
	var pl model.Playlist
	const q = `
	INSERT INTO playlists (tenant_id, name, description, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, tenant_id, name, description, is_default, created_at, updated_at;
	`
	if err := p.db.Get(&pl, q, tenantID, name, description); err != nil {
		log.Error().Err(err).Msg("failed to create playlist")
		return model.Playlist{}, err
	}
	return pl, nil
}

func (p *pgStore) GetPlaylistByID(id int) (model.Playlist, error) {
	var pl model.Playlist
	const q = `
	SELECT id, tenant_id, name, description, is_default, created_at, updated_at
	FROM playlists
	WHERE id = $1;
	`
	if err := p.db.Get(&pl, q, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Int("playlist_id", id).Msg("failed to get playlist")
		}
		return model.Playlist{}, err
	}
	return pl, nil
}

func (p *pgStore) ListPlaylists(tenantID int) ([]model.Playlist, error) {
	var out []model.Playlist
	const q = `
	SELECT id, tenant_id, name, description, is_default, created_at, updated_at
	  FROM playlists
	 WHERE tenant_id = $1
	 ORDER BY id;
	`
	if err := p.db.Select(&out, q, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to list playlists")
		return nil, err
	}
	return out, nil
}

func (p *pgStore) UpdatePlaylist(id int, name, description *string) error {
	_, err := p.db.Exec(`
		UPDATE playlists
		SET
		name        = COALESCE($2, name),
		description = COALESCE($3, description),
		updated_at  = now()
		WHERE id = $1;`,
		id, name, description,
	)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to update playlist")
	}
	return err
}

func (p *pgStore) DeletePlaylist(id int) error {
	_, err := p.db.Exec(`DELETE FROM playlists WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("playlist_id", id).Msg("failed to delete playlist")
	}
	return err
}

// SetDefaultPlaylist flips the tenant's fallback playlist inside one
// transaction; the partial unique index on playlists guarantees at most
// one default per tenant.
func (p *pgStore) SetDefaultPlaylist(tenantID, playlistID int) error {
	tx, err := p.db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`
		UPDATE playlists
		   SET is_default = false, updated_at = now()
		 WHERE tenant_id = $1 AND is_default = true;
	`, tenantID); err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to clear default playlist")
		return err
	}

	var updated int
	if err = tx.Get(&updated, `
		UPDATE playlists
		   SET is_default = true, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2
		 RETURNING id;
	`, playlistID, tenantID); err != nil {
		log.Error().Err(err).Int("playlist_id", playlistID).Msg("failed to set default playlist")
		return err
	}

	return tx.Commit()
}

// GetDefaultPlaylist returns nil, nil when the tenant has no default.
func (p *pgStore) GetDefaultPlaylist(tenantID int) (*model.Playlist, error) {
	var pl model.Playlist
	const q = `
	SELECT id, tenant_id, name, description, is_default, created_at, updated_at
	  FROM playlists
	 WHERE tenant_id = $1 AND is_default = true;
	`
	if err := p.db.Get(&pl, q, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to get default playlist")
		return nil, err
	}
	return &pl, nil
}
