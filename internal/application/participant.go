package application

import (
	"context"
	"fmt"
	"log/slog"

	"sojasapi/internal/domain"
	"sojasapi/internal/ports/output"
)

type ParticipantService struct {
	participantRepo output.ParticipantRepository
	eventRepo       output.EventRepository
	logger          *slog.Logger
}

func NewParticipantService(
	participantRepo output.ParticipantRepository,
	eventRepo output.EventRepository,
	logger *slog.Logger,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		logger:          logger,
	}
}

// Participate registers userID for eventID. Participating twice is not an error.
func (s *ParticipantService) Participate(ctx context.Context, eventID, userID int64) error {
	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check event %d: %w", eventID, err)
	}
	if !exists {
		return domain.ErrEventNotFound
	}
	if err := s.participantRepo.Add(ctx, eventID, userID); err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

// StopParticipating removes the participation if there is one. Removing a participation
// that never existed succeeds as well.
func (s *ParticipantService) StopParticipating(ctx context.Context, eventID, userID int64) error {
	removed, err := s.participantRepo.Remove(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	s.logger.Debug("participation removed", "event_id", eventID, "user_id", userID, "rows", removed)
	return nil
}
