package database

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"sojasapi/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func int8ToPtr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func ptrToInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

// jsonArg passes an empty payload as SQL NULL.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

const eventColumns = `e.id, e.region_id, e.title, e.description, e.reward, e.source::text, e.url, e.image_url,
	e.start_date, e.all_day, e.venue_id, e.payload, e.created_at, e.updated_at`

// scanEvent scans eventColumns followed by extra destinations.
func scanEvent(row pgx.Row, extra ...any) (entities.Event, error) {
	var (
		e         entities.Event
		regionID  pgtype.Int8
		reward    int32
		source    string
		startDate pgtype.Timestamptz
		venueID   pgtype.Int8
		payload   []byte
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	dest := append([]any{
		&e.ID, &regionID, &e.Title, &e.Description, &reward, &source, &e.URL, &e.ImageURL,
		&startDate, &e.AllDay, &venueID, &payload, &createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return entities.Event{}, err
	}
	e.RegionID = int8ToPtr(regionID)
	e.Reward = int(reward)
	e.Source = entities.Source(source)
	e.StartDate = pgtypeTimestamptzToTime(startDate)
	e.VenueID = int8ToPtr(venueID)
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return e, nil
}

const userColumns = `id, remote_id, username, display_name, nicename, email, COALESCE(token, ''),
	is_admin, soy_balance, created_at, updated_at`

func scanUser(row pgx.Row) (entities.User, error) {
	var (
		u          entities.User
		remoteID   pgtype.Int8
		soyBalance int32
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := row.Scan(&u.ID, &remoteID, &u.Username, &u.DisplayName, &u.Nicename, &u.Email, &u.Token,
		&u.IsAdmin, &soyBalance, &createdAt, &updatedAt)
	if err != nil {
		return entities.User{}, err
	}
	u.RemoteID = int8ToPtr(remoteID)
	u.SoyBalance = int(soyBalance)
	u.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	u.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return u, nil
}
