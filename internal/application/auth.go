package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

// AuthMode selects how a bearer token is trusted.
type AuthMode string

const (
	// AuthModeCache trusts any token stored on a local user.
	AuthModeCache AuthMode = "cache"
	// AuthModeRemote additionally asks the remote API whether the token is still valid.
	AuthModeRemote AuthMode = "remote"
)

type AuthService struct {
	userRepo output.UserRepository
	provider output.IdentityProvider
	mode     AuthMode
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(userRepo output.UserRepository, provider output.IdentityProvider, mode AuthMode, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		provider: provider,
		mode:     mode,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve maps an Authorization header value to the local user holding its bearer token.
// It never writes.
func (s *AuthService) Resolve(ctx context.Context, authorization string) (*entities.User, error) {
	token, err := bearerToken(authorization)
	if err != nil {
		return nil, err
	}
	if claims, ok := inspectToken(token); ok && claims.expired(s.now()) {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.mode == AuthModeRemote {
		if err := s.provider.ValidateToken(ctx, token); err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				return nil, domain.ErrInvalidToken
			}
			s.logger.Warn("token validation unavailable", "user_id", user.ID, "err", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrValidationUnavailable, err)
		}
	}
	return user, nil
}

// LoginAndCache logs in on the remote API and stores the returned identity and token
// on the local user with that username, creating it on first login.
func (s *AuthService) LoginAndCache(ctx context.Context, username, password string) (*entities.User, entities.LoginResult, error) {
	result, err := s.provider.Login(ctx, username, password)
	if err != nil {
		return nil, entities.LoginResult{}, err
	}

	user := &entities.User{
		Username:    username,
		DisplayName: result.UserDisplayName,
		Nicename:    result.UserNicename,
		Email:       result.UserEmail,
		Token:       result.Token,
	}
	if claims, ok := inspectToken(result.Token); ok {
		user.RemoteID = claims.userID
	}
	if err := s.userRepo.UpsertByUsername(ctx, user); err != nil {
		return nil, entities.LoginResult{}, fmt.Errorf("cache user %q: %w", username, err)
	}
	s.logger.Info("user logged in", "user_id", user.ID, "username", username)
	return user, result, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}
