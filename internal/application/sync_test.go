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

func TestSyncPagePreservesLocalFields(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	region := int64(3)
	store.PutLocal(entities.Event{
		ID:       1,
		RegionID: &region,
		Title:    "old title",
		Reward:   -5,
		ImageURL: "https://img.example/1.png",
		Source:   entities.SourceLocal,
	})

	venue := entities.Venue{ID: 9, Name: "COC", URL: "https://coc.nl"}
	first := remoteEvent(1, "new title")
	first.Venue = entities.PresentVenue(venue)
	second := remoteEvent(1, "newer title")

	source := &fakeSource{pages: map[int]entities.RemotePage{}}
	svc := NewSyncService(source, store, memory.NewVenueStore(), logging.Discard())

	source.pages[1] = entities.RemotePage{Events: []entities.RemoteEvent{first}, TotalPages: 1}
	_, err := svc.SyncPage(ctx, 1)
	require.NoError(t, err)

	source.pages[1] = entities.RemotePage{Events: []entities.RemoteEvent{second}, TotalPages: 1}
	_, err = svc.SyncPage(ctx, 1)
	require.NoError(t, err)

	got, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "newer title", got.Title)
	assert.Equal(t, entities.SourceExternal, got.Source)
	assert.Equal(t, -5, got.Reward)
	require.NotNil(t, got.RegionID)
	assert.Equal(t, int64(3), *got.RegionID)
	assert.Equal(t, "https://img.example/1.png", got.ImageURL)
	require.NotNil(t, got.VenueID, "absent venue keeps the stored one")
	assert.Equal(t, int64(9), *got.VenueID)
}

func TestSyncPageStoresVenues(t *testing.T) {
	venues := memory.NewVenueStore()
	event := remoteEvent(2, "picnic")
	event.Venue = entities.PresentVenue(entities.Venue{ID: 11, Name: "Vondelpark", ShowMap: true})
	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: []entities.RemoteEvent{event}, TotalPages: 1},
	}}
	svc := NewSyncService(source, memory.NewStore(), venues, logging.Discard())

	_, err := svc.SyncPage(context.Background(), 1)
	require.NoError(t, err)

	v, ok := venues.Get(11)
	require.True(t, ok)
	assert.Equal(t, "Vondelpark", v.Name)
	assert.True(t, v.ShowMap)
}

func TestSyncPageStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("constraint violation")
	events := &failingEvents{Store: memory.NewStore(), failOn: 3, err: storeErr}

	var batch []entities.RemoteEvent
	for id := int64(1); id <= 5; id++ {
		batch = append(batch, remoteEvent(id, "event"))
	}
	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: batch, TotalPages: 1},
	}}
	svc := NewSyncService(source, events, memory.NewVenueStore(), logging.Discard())

	_, err := svc.SyncPage(ctx, 1)

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, int64(3), syncErr.EventID)
	assert.ErrorIs(t, err, storeErr)

	for id, want := range map[int64]bool{1: true, 2: true, 3: false, 4: false, 5: false} {
		exists, err := events.Exists(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, exists, "event %d", id)
	}
}

func TestSyncPagePassesFetchErrors(t *testing.T) {
	connErr := &domain.ConnectionError{Endpoint: "tribe/events/v1/events", Err: errors.New("dial tcp: refused")}
	source := &fakeSource{err: connErr}
	store := memory.NewStore()
	svc := NewSyncService(source, store, memory.NewVenueStore(), logging.Discard())

	_, err := svc.SyncPage(context.Background(), 1)

	var got *domain.ConnectionError
	require.ErrorAs(t, err, &got)
	rows, err := store.ListWithParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSyncPageStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := memory.NewStore()
	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: []entities.RemoteEvent{remoteEvent(1, "a"), remoteEvent(2, "b")}, TotalPages: 1},
	}}
	svc := NewSyncService(source, store, memory.NewVenueStore(), logging.Discard())

	_, err := svc.SyncPage(ctx, 1)

	var syncErr *domain.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, int64(1), syncErr.EventID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSyncAllWalksEveryPage(t *testing.T) {
	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: []entities.RemoteEvent{remoteEvent(1, "a"), remoteEvent(2, "b")}, TotalPages: 3},
		2: {Events: []entities.RemoteEvent{remoteEvent(3, "c")}, TotalPages: 3},
		3: {Events: []entities.RemoteEvent{remoteEvent(4, "d")}, TotalPages: 3},
	}}
	store := memory.NewStore()
	svc := NewSyncService(source, store, memory.NewVenueStore(), logging.Discard())

	summary, err := svc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entities.SyncSummary{Pages: 3, Events: 4}, summary)
	assert.Equal(t, []int{1, 2, 3}, source.calls)
}

func TestSyncAllStopsOnPageFailure(t *testing.T) {
	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: []entities.RemoteEvent{remoteEvent(1, "a")}, TotalPages: 2},
	}}
	svc := NewSyncService(source, memory.NewStore(), memory.NewVenueStore(), logging.Discard())

	summary, err := svc.SyncAll(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, summary.Pages)
}

func TestListFreshReturnsPageInRemoteOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutLocal(entities.Event{ID: 100, Title: "local only", Source: entities.SourceLocal})
	require.NoError(t, store.Add(ctx, 100, 1))

	source := &fakeSource{pages: map[int]entities.RemotePage{
		1: {Events: []entities.RemoteEvent{remoteEvent(8, "h"), remoteEvent(2, "b")}, TotalPages: 1},
	}}
	sync := NewSyncService(source, store, memory.NewVenueStore(), logging.Discard())
	events := NewEventService(store, sync)

	views, err := events.ListFresh(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(8), views[0].ID)
	assert.Equal(t, int64(2), views[1].ID)

	cached, err := events.ListCached(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}
