package input

import "context"

type ParticipantUseCase interface {
	Participate(ctx context.Context, eventID, userID int64) error
	StopParticipating(ctx context.Context, eventID, userID int64) error
}
