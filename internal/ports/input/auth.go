package input

import (
	"context"

	"sojasapi/internal/domain/entities"
)

type AuthUseCase interface {
	Resolve(ctx context.Context, authorization string) (*entities.User, error)
	LoginAndCache(ctx context.Context, username, password string) (*entities.User, entities.LoginResult, error)
}

type UserUseCase interface {
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}
