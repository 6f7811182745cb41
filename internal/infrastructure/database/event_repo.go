package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// upsertRemoteEventSQL only assigns the externally owned columns on conflict.
// region_id, reward and image_url are never part of the update set; venue_id is
// only replaced when the remote record carries a venue.
const upsertRemoteEventSQL = `
INSERT INTO events (id, title, description, source, url, start_date, all_day, venue_id, payload)
VALUES ($1, $2, $3, 'external', $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	source = EXCLUDED.source,
	url = EXCLUDED.url,
	start_date = EXCLUDED.start_date,
	all_day = EXCLUDED.all_day,
	venue_id = COALESCE(EXCLUDED.venue_id, events.venue_id),
	payload = EXCLUDED.payload,
	updated_at = now()`

const eventExistsSQL = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`

const getEventByIDSQL = `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

const listEventsWithParticipantsSQL = `SELECT ` + eventColumns + `, p.user_id
FROM events e
LEFT JOIN participants p ON p.event_id = e.id
ORDER BY e.id, p.user_id`

// EventRepository implements output.EventRepository on PostgreSQL.
type EventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) UpsertRemote(ctx context.Context, event entities.RemoteEvent) error {
	var venueID *int64
	if venue, ok := event.Venue.Get(); ok {
		venueID = &venue.ID
	}
	_, err := r.db.Exec(ctx, upsertRemoteEventSQL,
		event.ID,
		event.Title,
		event.Description,
		event.URL,
		timeToTimestamptz(event.StartDate),
		event.AllDay,
		ptrToInt8(venueID),
		jsonArg(event.Payload),
	)
	if err != nil {
		return fmt.Errorf("upsert event %d: %w", event.ID, err)
	}
	return nil
}

func (r *EventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, eventExistsSQL, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("event exists: %w", err)
	}
	return exists, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, getEventByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) ListWithParticipants(ctx context.Context) ([]entities.EventParticipantRow, error) {
	rows, err := r.db.Query(ctx, listEventsWithParticipantsSQL)
	if err != nil {
		return nil, fmt.Errorf("list events with participants: %w", err)
	}
	defer rows.Close()

	var out []entities.EventParticipantRow
	for rows.Next() {
		var userID *int64
		e, err := scanEvent(rows, &userID)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		out = append(out, entities.EventParticipantRow{Event: e, UserID: userID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events with participants: %w", err)
	}
	return out, nil
}
