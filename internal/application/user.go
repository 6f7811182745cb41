package application

import (
	"context"

	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

type UserService struct {
	userRepo output.UserRepository
}

func NewUserService(userRepo output.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.userRepo.List(ctx)
}
