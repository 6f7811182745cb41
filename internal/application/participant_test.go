package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/infrastructure/memory"
	"sojasapi/pkg/logging"
)

func newParticipantFixture(t *testing.T) (*ParticipantService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.PutLocal(entities.Event{ID: 1, Title: "Pride walk", Source: entities.SourceExternal})
	return NewParticipantService(store, store, logging.Discard()), store
}

func TestParticipateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newParticipantFixture(t)

	require.NoError(t, svc.Participate(ctx, 1, 42))
	require.NoError(t, svc.Participate(ctx, 1, 42))

	assert.Equal(t, 1, store.ParticipantCount(1))
}

func TestParticipateUnknownEvent(t *testing.T) {
	ctx := context.Background()
	svc, store := newParticipantFixture(t)

	err := svc.Participate(ctx, 999, 42)

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Zero(t, store.ParticipantCount(999))
}

func TestStopParticipatingNeverJoinedSucceeds(t *testing.T) {
	svc, _ := newParticipantFixture(t)

	assert.NoError(t, svc.StopParticipating(context.Background(), 1, 42))
	assert.NoError(t, svc.StopParticipating(context.Background(), 12345, 42))
}

func TestParticipateThenStop(t *testing.T) {
	ctx := context.Background()
	svc, store := newParticipantFixture(t)

	require.NoError(t, svc.Participate(ctx, 1, 42))
	require.NoError(t, svc.Participate(ctx, 1, 43))
	require.NoError(t, svc.StopParticipating(ctx, 1, 42))

	views, err := NewEventService(store, nil).ListCached(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, []int64{43}, views[0].ParticipantIDs)
}

type brokenParticipants struct{ err error }

func (b brokenParticipants) Add(context.Context, int64, int64) error { return b.err }
func (b brokenParticipants) Remove(context.Context, int64, int64) (int64, error) {
	return 0, b.err
}

func TestParticipationStoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutLocal(entities.Event{ID: 1})
	storeErr := errors.New("connection reset")
	svc := NewParticipantService(brokenParticipants{err: storeErr}, store, logging.Discard())

	assert.ErrorIs(t, svc.Participate(ctx, 1, 2), storeErr)
	assert.ErrorIs(t, svc.StopParticipating(ctx, 1, 2), storeErr)
}
