package database

import (
	"context"
	"fmt"

	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

var _ output.VenueRepository = (*VenueRepository)(nil)

const upsertVenueSQL = `
INSERT INTO venues (id, name, url, show_map)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	url = EXCLUDED.url,
	show_map = EXCLUDED.show_map,
	updated_at = now()`

type VenueRepository struct {
	db DBTX
}

func NewVenueRepository(db DBTX) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Upsert(ctx context.Context, venue entities.Venue) error {
	if _, err := r.db.Exec(ctx, upsertVenueSQL, venue.ID, venue.Name, venue.URL, venue.ShowMap); err != nil {
		return fmt.Errorf("upsert venue %d: %w", venue.ID, err)
	}
	return nil
}
