package tribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sojasapi/internal/domain/entities"
	"sojasapi/pkg/tz"
)

// eventsEnvelope is the body of GET /tribe/events/v1/events.
type eventsEnvelope struct {
	Events      []json.RawMessage `json:"events"`
	RestURL     string            `json:"rest_url"`
	NextRestURL string            `json:"next_rest_url,omitempty"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"total_pages"`
}

type wireEvent struct {
	ID           int64      `json:"id"`
	GlobalID     string     `json:"global_id,omitempty"`
	Status       string     `json:"status,omitempty"`
	URL          string     `json:"url"`
	RestURL      string     `json:"rest_url,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Excerpt      string     `json:"excerpt,omitempty"`
	Slug         string     `json:"slug,omitempty"`
	AllDay       bool       `json:"all_day"`
	StartDate    string     `json:"start_date"`
	UTCStartDate string     `json:"utc_start_date,omitempty"`
	Venue        venueField `json:"venue"`
}

type wireVenue struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Name    string `json:"venue"`
	ShowMap bool   `json:"show_map"`
}

// venueField decodes the remote venue, which is a venue object or, when the
// event has no venue, an empty JSON array.
type venueField struct {
	present bool
	venue   wireVenue
}

func (f *venueField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = venueField{}
		return nil
	}

	var v wireVenue
	objErr := json.Unmarshal(trimmed, &v)
	if objErr == nil {
		*f = venueField{present: true, venue: v}
		return nil
	}

	var empty []json.RawMessage
	if err := json.Unmarshal(trimmed, &empty); err == nil && len(empty) == 0 {
		*f = venueField{}
		return nil
	}
	return fmt.Errorf("venue is neither an object nor an empty array: %w", objErr)
}

func (f venueField) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("[]"), nil
	}
	return json.Marshal(f.venue)
}

func (f venueField) toEntity() entities.VenueField {
	if !f.present {
		return entities.VenueField{Kind: entities.VenueAbsent}
	}
	return entities.PresentVenue(entities.Venue{
		ID:      f.venue.ID,
		Name:    f.venue.Name,
		URL:     f.venue.URL,
		ShowMap: f.venue.ShowMap,
	})
}

// decodeEvent decodes one raw event and keeps raw as its payload.
func decodeEvent(raw json.RawMessage) (entities.RemoteEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return entities.RemoteEvent{}, err
	}
	start, err := parseStartDate(w.UTCStartDate, w.StartDate)
	if err != nil {
		return entities.RemoteEvent{}, fmt.Errorf("event %d: %w", w.ID, err)
	}
	return entities.RemoteEvent{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		URL:         w.URL,
		StartDate:   start,
		AllDay:      w.AllDay,
		Venue:       w.Venue.toEntity(),
		Payload:     append(json.RawMessage(nil), raw...),
	}, nil
}

// parseStartDate prefers the UTC date; the local one is in the site timezone.
func parseStartDate(utc, local string) (time.Time, error) {
	if s := strings.TrimSpace(utc); s != "" {
		t, err := tz.ParseUTC(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("utc_start_date %q: %w", s, err)
		}
		return t, nil
	}
	if s := strings.TrimSpace(local); s != "" {
		t, err := tz.ParseSiteLocal(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("start_date %q: %w", s, err)
		}
		return t, nil
	}
	return time.Time{}, nil
}

type loginResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

// errorEnvelope is the WordPress REST error body.
type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}
