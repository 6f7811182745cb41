package entities

import (
	"encoding/json"
	"time"
)

// Source tells who owns the editable fields of an event.
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// Event is a stored event. ID is the remote numeric ID for mirrored events.
// RegionID, Reward and ImageURL are curated locally and never written by a sync.
type Event struct {
	ID          int64
	RegionID    *int64
	Title       string
	Description string
	Reward      int // negative = cost
	Source      Source
	URL         string
	ImageURL    string
	StartDate   time.Time // zero = unknown
	AllDay      bool
	VenueID     *int64
	Payload     json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventParticipantRow is one row of events LEFT JOIN participants.
// UserID is nil when the event has no participant.
type EventParticipantRow struct {
	Event  Event
	UserID *int64
}

// EventView is an event with the set of users participating in it.
type EventView struct {
	Event
	ParticipantIDs []int64
}
