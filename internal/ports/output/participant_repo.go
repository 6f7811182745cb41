package output

import "context"

type ParticipantRepository interface {
	// Add is a no-op when the pair already exists.
	Add(ctx context.Context, eventID, userID int64) error
	// Remove returns the number of rows deleted; zero is not an error.
	Remove(ctx context.Context, eventID, userID int64) (int64, error)
}
