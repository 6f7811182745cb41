package httpapi

import (
	"encoding/json"
	"time"

	"sojasapi/internal/domain/entities"
)

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	EventID *int64 `json:"event_id,omitempty"`
}

type participantResponse struct {
	UserID int64 `json:"user_id"`
}

type eventResponse struct {
	ID           int64                 `json:"id"`
	RegionID     *int64                `json:"region_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Reward       int                   `json:"reward"`
	Source       entities.Source       `json:"source"`
	URL          string                `json:"url"`
	ImageURL     string                `json:"image_url"`
	StartDate    *time.Time            `json:"start_date"`
	AllDay       bool                  `json:"all_day"`
	VenueID      *int64                `json:"venue_id"`
	Payload      json.RawMessage       `json:"payload,omitempty"`
	Participants []participantResponse `json:"participants"`
}

func toEventResponse(v entities.EventView) eventResponse {
	participants := make([]participantResponse, 0, len(v.ParticipantIDs))
	for _, id := range v.ParticipantIDs {
		participants = append(participants, participantResponse{UserID: id})
	}
	resp := eventResponse{
		ID:           v.ID,
		RegionID:     v.RegionID,
		Title:        v.Title,
		Description:  v.Description,
		Reward:       v.Reward,
		Source:       v.Source,
		URL:          v.URL,
		ImageURL:     v.ImageURL,
		AllDay:       v.AllDay,
		VenueID:      v.VenueID,
		Payload:      v.Payload,
		Participants: participants,
	}
	if !v.StartDate.IsZero() {
		start := v.StartDate
		resp.StartDate = &start
	}
	return resp
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

type userResponse struct {
	ID          int64     `json:"id"`
	RemoteID    *int64    `json:"remote_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Nicename    string    `json:"nicename"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"is_admin"`
	SoyBalance  int       `json:"soy_balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// toUserResponse never exposes the cached token.
func toUserResponse(u entities.User) userResponse {
	return userResponse{
		ID:          u.ID,
		RemoteID:    u.RemoteID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Nicename:    u.Nicename,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		SoyBalance:  u.SoyBalance,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
