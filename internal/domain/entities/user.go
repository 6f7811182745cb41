package entities

import "time"

// User is the local copy of a remote identity.
// Token is the last bearer token issued to the user and is used as lookup key.
type User struct {
	ID          int64
	RemoteID    *int64
	Username    string
	DisplayName string
	Nicename    string
	Email       string
	Token       string
	IsAdmin     bool
	SoyBalance  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LoginResult is what the remote token endpoint returns on success.
type LoginResult struct {
	Token           string
	UserEmail       string
	UserNicename    string
	UserDisplayName string
}
