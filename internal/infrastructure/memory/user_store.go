package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
)

// UserStore keeps users keyed by ID with a username index.
type UserStore struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]entities.User
	byUsername map[string]int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[int64]entities.User),
		byUsername: make(map[string]int64),
	}
}

func (s *UserStore) UpsertByUsername(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	id, exists := s.byUsername[user.Username]
	if !exists {
		s.nextID++
		id = s.nextID
		s.byUsername[user.Username] = id
		stored := *user
		stored.ID = id
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.users[id] = stored
		*user = stored
		return nil
	}

	stored := s.users[id]
	if user.RemoteID != nil {
		stored.RemoteID = user.RemoteID
	}
	stored.DisplayName = user.DisplayName
	stored.Nicename = user.Nicename
	stored.Email = user.Email
	stored.Token = user.Token
	stored.UpdatedAt = now
	s.users[id] = stored
	*user = stored
	return nil
}

func (s *UserStore) FindByToken(_ context.Context, token string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	for _, u := range s.users {
		if u.Token == token {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrInvalidToken
}

func (s *UserStore) FindByID(_ context.Context, id int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) List(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
