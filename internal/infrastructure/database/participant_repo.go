package database

import (
	"context"
	"fmt"

	"sojasapi/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

const addParticipantSQL = `
INSERT INTO participants (event_id, user_id)
VALUES ($1, $2)
ON CONFLICT (event_id, user_id) DO NOTHING`

const removeParticipantSQL = `DELETE FROM participants WHERE event_id = $1 AND user_id = $2`

// ParticipantRepository implements output.ParticipantRepository using pgx.
type ParticipantRepository struct {
	db DBTX
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(db DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Add(ctx context.Context, eventID, userID int64) error {
	if _, err := r.db.Exec(ctx, addParticipantSQL, eventID, userID); err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) Remove(ctx context.Context, eventID, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, removeParticipantSQL, eventID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete participant: %w", err)
	}
	return tag.RowsAffected(), nil
}
