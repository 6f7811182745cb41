package database

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUpsertRemoteEventUpdateSetOnlyExternalColumns(t *testing.T) {
	parts := strings.SplitN(upsertRemoteEventSQL, "DO UPDATE SET", 2)
	require.Len(t, parts, 2)
	update := parts[1]

	for _, col := range []string{"region_id", "reward", "image_url"} {
		assert.NotContains(t, update, col)
	}
	for _, col := range []string{"title", "description", "url", "start_date", "all_day", "payload"} {
		assert.Contains(t, update, col+" = EXCLUDED."+col)
	}
	assert.Contains(t, update, "COALESCE(EXCLUDED.venue_id, events.venue_id)")
}

func TestUpsertRemoteEvent(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)
	start := time.Date(2024, 8, 3, 10, 0, 0, 0, time.UTC)
	event := entities.RemoteEvent{
		ID:        101,
		Title:     "Pride walk",
		URL:       "https://pinkpolitiek.nl/event/pride-walk/",
		StartDate: start,
		Venue:     entities.PresentVenue(entities.Venue{ID: 7}),
		Payload:   json.RawMessage(`{"id":101}`),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO events")).
		WithArgs(int64(101), "Pride walk", "", "https://pinkpolitiek.nl/event/pride-walk/",
			timeToTimestamptz(start), false, ptrToInt8(&event.Venue.Venue.ID), `{"id":101}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.UpsertRemote(context.Background(), event))
}

func TestUpsertRemoteEventAbsentVenuePassesNull(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO events")).
		WithArgs(int64(5), "t", "", "", pgxmock.AnyArg(), false, ptrToInt8(nil), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.UpsertRemote(context.Background(), entities.RemoteEvent{ID: 5, Title: "t"}))
}

func TestUpsertRemoteEventWrapsErrors(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)
	dbErr := errors.New("deadlock detected")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO events")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(dbErr)

	err := repo.UpsertRemote(context.Background(), entities.RemoteEvent{ID: 9})
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "event 9")
}

func TestEventExists(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindEventByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewEventRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events e WHERE e.id = $1")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestParticipantAddIgnoresDuplicates(t *testing.T) {
	mock := newMock(t)
	repo := NewParticipantRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (event_id, user_id) DO NOTHING")).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (event_id, user_id) DO NOTHING")).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.Add(context.Background(), 1, 42))
	require.NoError(t, repo.Add(context.Background(), 1, 42))
}

func TestParticipantRemoveReportsRows(t *testing.T) {
	mock := newMock(t)
	repo := NewParticipantRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM participants")).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM participants")).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := repo.Remove(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Remove(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVenueUpsert(t *testing.T) {
	mock := newMock(t)
	repo := NewVenueRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO venues")).
		WithArgs(int64(7), "COC Amsterdam", "https://coc.nl", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), entities.Venue{ID: 7, Name: "COC Amsterdam", URL: "https://coc.nl", ShowMap: true}))
}

func TestUserLookupsMapNoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE token = $1")).
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = repo.FindByID(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
