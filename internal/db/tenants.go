package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

func (p *pgStore) GetTenantByID(id int) (*model.Tenant, error) {
	var t model.Tenant
	const q = `
	SELECT id, name, is_active, created_at, updated_at
	FROM tenants
	WHERE id = $1;
	`
	if err := p.db.Get(&t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("tenant_id", id).Msg("failed to get tenant")
		return nil, err
	}
	return &t, nil
}

func (p *pgStore) ListActiveTenants() ([]model.Tenant, error) {
	var out []model.Tenant
	const q = `
	SELECT id, name, is_active, created_at, updated_at
	  FROM tenants
	 WHERE is_active = true
	 ORDER BY id;
	`
	if err := p.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("failed to list active tenants")
		return nil, err
	}
	return out, nil
}
