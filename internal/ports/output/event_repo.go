package output

import (
	"context"

	"sojasapi/internal/domain/entities"
)

type EventRepository interface {
	// UpsertRemote inserts the event or updates only its externally owned fields.
	UpsertRemote(ctx context.Context, event entities.RemoteEvent) error
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	ListWithParticipants(ctx context.Context) ([]entities.EventParticipantRow, error)
}

type VenueRepository interface {
	Upsert(ctx context.Context, venue entities.Venue) error
}
