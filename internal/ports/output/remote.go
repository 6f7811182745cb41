package output

import (
	"context"

	"sojasapi/internal/domain/entities"
)

// EventSource fetches events from the remote API. page <= 1 is the first page.
type EventSource interface {
	FetchEvents(ctx context.Context, page int) (entities.RemotePage, error)
}

// IdentityProvider issues and validates bearer tokens on the remote API.
type IdentityProvider interface {
	Login(ctx context.Context, username, password string) (entities.LoginResult, error)
	ValidateToken(ctx context.Context, token string) error
}
