// Package memory keeps events, participants and users in process memory.
// It backs DATASTORE=memory for local runs and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

var (
	_ output.EventRepository       = (*Store)(nil)
	_ output.VenueRepository       = (*VenueStore)(nil)
	_ output.ParticipantRepository = (*Store)(nil)
	_ output.UserRepository        = (*UserStore)(nil)
)

type pair struct {
	eventID int64
	userID  int64
}

// Store holds events and participants together so that deleting an event can
// cascade to its participants.
type Store struct {
	mu           sync.RWMutex
	events       map[int64]entities.Event
	participants map[pair]time.Time
}

func NewStore() *Store {
	return &Store{
		events:       make(map[int64]entities.Event),
		participants: make(map[pair]time.Time),
	}
}

// PutLocal stores a locally curated event as is.
func (s *Store) PutLocal(event entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	s.events[event.ID] = event
}

// DeleteEvent removes the event and its participants.
func (s *Store) DeleteEvent(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	for p := range s.participants {
		if p.eventID == id {
			delete(s.participants, p)
		}
	}
}

func (s *Store) UpsertRemote(_ context.Context, remote entities.RemoteEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	event, exists := s.events[remote.ID]
	if !exists {
		event = entities.Event{ID: remote.ID, CreatedAt: now}
	}
	event.Title = remote.Title
	event.Description = remote.Description
	event.Source = entities.SourceExternal
	event.URL = remote.URL
	event.StartDate = remote.StartDate
	event.AllDay = remote.AllDay
	event.Payload = remote.Payload
	if venue, ok := remote.Venue.Get(); ok {
		id := venue.ID
		event.VenueID = &id
	}
	event.UpdatedAt = now
	s.events[remote.ID] = event
	return nil
}

func (s *Store) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[id]
	return ok, nil
}

func (s *Store) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &event, nil
}

// ListWithParticipants mimics the LEFT JOIN: one row per participant, one
// row with a nil user for events nobody joined.
func (s *Store) ListWithParticipants(_ context.Context) ([]entities.EventParticipantRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[int64][]int64, len(s.events))
	for p := range s.participants {
		users[p.eventID] = append(users[p.eventID], p.userID)
	}

	ids := make([]int64, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []entities.EventParticipantRow
	for _, id := range ids {
		joined := users[id]
		if len(joined) == 0 {
			rows = append(rows, entities.EventParticipantRow{Event: s.events[id]})
			continue
		}
		sort.Slice(joined, func(i, j int) bool { return joined[i] < joined[j] })
		for _, userID := range joined {
			userID := userID
			rows = append(rows, entities.EventParticipantRow{Event: s.events[id], UserID: &userID})
		}
	}
	return rows, nil
}

func (s *Store) Add(_ context.Context, eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return domain.ErrEventNotFound
	}
	key := pair{eventID: eventID, userID: userID}
	if _, ok := s.participants[key]; !ok {
		s.participants[key] = time.Now()
	}
	return nil
}

func (s *Store) Remove(_ context.Context, eventID, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pair{eventID: eventID, userID: userID}
	if _, ok := s.participants[key]; !ok {
		return 0, nil
	}
	delete(s.participants, key)
	return 1, nil
}

// ParticipantCount returns the number of participation rows for eventID.
func (s *Store) ParticipantCount(eventID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for p := range s.participants {
		if p.eventID == eventID {
			n++
		}
	}
	return n
}

// VenueStore keeps mirrored venues.
type VenueStore struct {
	mu     sync.RWMutex
	venues map[int64]entities.Venue
}

func NewVenueStore() *VenueStore {
	return &VenueStore{venues: make(map[int64]entities.Venue)}
}

func (s *VenueStore) Upsert(_ context.Context, venue entities.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[venue.ID] = venue
	return nil
}

func (s *VenueStore) Get(id int64) (entities.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	return v, ok
}
