package entities

import (
	"encoding/json"
	"time"
)

// Venue is a location record of the remote API.
type Venue struct {
	ID      int64
	Name    string
	URL     string
	ShowMap bool
}

type VenueKind int

const (
	VenueAbsent VenueKind = iota
	VenuePresent
)

// VenueField is the venue of a remote event: either a venue or nothing.
type VenueField struct {
	Kind  VenueKind
	Venue Venue
}

func PresentVenue(v Venue) VenueField {
	return VenueField{Kind: VenuePresent, Venue: v}
}

// Get returns the venue and whether one is present.
func (f VenueField) Get() (Venue, bool) {
	return f.Venue, f.Kind == VenuePresent
}

// RemoteEvent is a normalized event record fetched from the remote API.
type RemoteEvent struct {
	ID          int64
	Title       string
	Description string
	URL         string
	StartDate   time.Time
	AllDay      bool
	Venue       VenueField
	Payload     json.RawMessage
}

// RemotePage is one page of the remote event listing.
type RemotePage struct {
	Page       int
	Events     []RemoteEvent
	Total      int
	TotalPages int
}

// SyncSummary reports what a full sync stored.
type SyncSummary struct {
	Pages  int
	Events int
}
