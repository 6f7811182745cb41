package output

import (
	"context"

	"sojasapi/internal/domain/entities"
)

type UserRepository interface {
	// UpsertByUsername creates the user or refreshes its profile and token, then fills user.ID.
	UpsertByUsername(ctx context.Context, user *entities.User) error
	// FindByToken returns domain.ErrInvalidToken when no user holds token.
	FindByToken(ctx context.Context, token string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
}
