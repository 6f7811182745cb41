package httpapi

import (
	"log/slog"

	"sojasapi/internal/ports/input"
	"sojasapi/internal/ports/output"
)

// Handler serves the REST API using use cases.
type Handler struct {
	eventUseCase       input.EventUseCase
	participantUseCase input.ParticipantUseCase
	authUseCase        input.AuthUseCase
	userUseCase        input.UserUseCase
	translator         output.T
	logger             *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	participantUseCase input.ParticipantUseCase,
	authUseCase input.AuthUseCase,
	userUseCase input.UserUseCase,
	translator output.T,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		eventUseCase:       eventUseCase,
		participantUseCase: participantUseCase,
		authUseCase:        authUseCase,
		userUseCase:        userUseCase,
		translator:         translator,
		logger:             logger,
	}
}
