package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
)

type ctxKey int

const userKey ctxKey = iota

var validate = validator.New()

// requireUser resolves the bearer token into a user stored on the request context.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authUseCase.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// userFromContext returns the user set by requireUser.
func userFromContext(ctx context.Context) *entities.User {
	user, _ := ctx.Value(userKey).(*entities.User)
	return user
}

// login serves POST /login. A remote 404 is passed through; other remote
// answers become a 500 carrying the remote envelope.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "body must be a JSON object")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeBadRequest(w, r, "username and password are required")
		return
	}

	_, result, err := h.authUseCase.LoginAndCache(r.Context(), req.Username, req.Password)
	if err != nil {
		var remoteErr *domain.RemoteError
		if errors.As(err, &remoteErr) {
			status := http.StatusInternalServerError
			if remoteErr.Status == http.StatusNotFound {
				status = http.StatusNotFound
			}
			h.logger.Warn("remote login rejected", "username", req.Username, "status", remoteErr.Status, "code", remoteErr.Code)
			writeJSON(w, status, errorResponse{Code: remoteErr.Code, Message: remoteErr.Message})
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:           result.Token,
		UserEmail:       result.UserEmail,
		UserNicename:    result.UserNicename,
		UserDisplayName: result.UserDisplayName,
	})
}
