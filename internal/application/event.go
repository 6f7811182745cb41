package application

import (
	"context"
	"fmt"

	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

type EventService struct {
	eventRepo output.EventRepository
	sync      *SyncService
}

func NewEventService(eventRepo output.EventRepository, sync *SyncService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		sync:      sync,
	}
}

func (s *EventService) ListCached(ctx context.Context) ([]entities.EventView, error) {
	rows, err := s.eventRepo.ListWithParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return AssembleViews(rows), nil
}

// ListFresh syncs one remote page and returns the views of the events on that page,
// in remote order.
func (s *EventService) ListFresh(ctx context.Context, page int) ([]entities.EventView, error) {
	remote, err := s.sync.SyncPage(ctx, page)
	if err != nil {
		return nil, err
	}
	views, err := s.ListCached(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entities.EventView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	out := make([]entities.EventView, 0, len(remote.Events))
	for _, event := range remote.Events {
		v, ok := byID[event.ID]
		if !ok {
			continue
		}
		out = append(out, v)
		delete(byID, event.ID)
	}
	return out, nil
}
