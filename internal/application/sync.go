package application

import (
	"context"
	"fmt"
	"log/slog"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

// SyncService copies remote events into local storage.
type SyncService struct {
	source output.EventSource
	events output.EventRepository
	venues output.VenueRepository
	logger *slog.Logger
}

func NewSyncService(
	source output.EventSource,
	events output.EventRepository,
	venues output.VenueRepository,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source: source,
		events: events,
		venues: venues,
		logger: logger,
	}
}

// SyncPage fetches one page and upserts its events one after the other.
// The first failing event stops the pass with a *domain.SyncError; events stored
// before it are kept.
func (s *SyncService) SyncPage(ctx context.Context, page int) (entities.RemotePage, error) {
	remote, err := s.source.FetchEvents(ctx, page)
	if err != nil {
		return entities.RemotePage{}, err
	}
	if err := s.store(ctx, remote.Events); err != nil {
		return remote, err
	}
	s.logger.Info("sync page stored", "page", remote.Page, "events", len(remote.Events), "total_pages", remote.TotalPages)
	return remote, nil
}

// SyncAll walks every remote page starting from the first one.
func (s *SyncService) SyncAll(ctx context.Context) (entities.SyncSummary, error) {
	var summary entities.SyncSummary
	for page := 1; ; page++ {
		remote, err := s.SyncPage(ctx, page)
		if err != nil {
			return summary, fmt.Errorf("sync page %d: %w", page, err)
		}
		summary.Pages++
		summary.Events += len(remote.Events)
		if page >= remote.TotalPages {
			return summary, nil
		}
	}
}

func (s *SyncService) store(ctx context.Context, events []entities.RemoteEvent) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return &domain.SyncError{EventID: event.ID, Err: err}
		}
		if venue, ok := event.Venue.Get(); ok {
			if err := s.venues.Upsert(ctx, venue); err != nil {
				s.logger.Error("venue upsert failed", "event_id", event.ID, "venue_id", venue.ID, "err", err)
				return &domain.SyncError{EventID: event.ID, Err: fmt.Errorf("upsert venue %d: %w", venue.ID, err)}
			}
		}
		if err := s.events.UpsertRemote(ctx, event); err != nil {
			s.logger.Error("event upsert failed", "event_id", event.ID, "err", err)
			return &domain.SyncError{EventID: event.ID, Err: err}
		}
	}
	return nil
}
