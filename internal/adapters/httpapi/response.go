package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"sojasapi/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFor maps a use case error to its HTTP status.
func statusFor(err error) int {
	var (
		connErr   *domain.ConnectionError
		remoteErr *domain.RemoteError
	)
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidationUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &remoteErr):
		if remoteErr.Status >= 400 && remoteErr.Status < 500 {
			return remoteErr.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &connErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {code, message, event_id?} in the request locale.
// A remote error keeps the remote's code and message. Server-side failures are logged.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := domain.Code(err)
	if code == "" {
		code = "internal"
	}

	resp := errorResponse{Code: code}
	data := map[string]any{}
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) {
		id := syncErr.EventID
		resp.EventID = &id
		data["EventID"] = id
	}
	resp.Message = h.message(r, "error_"+code, data)

	var remoteErr *domain.RemoteError
	if code == "remote_error" && errors.As(err, &remoteErr) {
		if remoteErr.Code != "" {
			resp.Code = remoteErr.Code
		}
		if remoteErr.Message != "" {
			resp.Message = remoteErr.Message
		}
	}

	if status >= http.StatusInternalServerError {
		attrs := []any{"method", r.Method, "path", r.URL.Path, "status", status, "code", resp.Code, "err", err}
		if resp.EventID != nil {
			attrs = append(attrs, "event_id", *resp.EventID)
		}
		h.logger.Error("request failed", attrs...)
	}

	writeJSON(w, status, resp)
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, r *http.Request, reason string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    "bad_request",
		Message: h.message(r, "error_bad_request", map[string]any{"Reason": reason}),
	})
}

// message renders key in the locale negotiated from Accept-Language.
func (h *Handler) message(r *http.Request, key string, data map[string]any) string {
	locale := h.translator.Locale(r.Header.Get("Accept-Language"))
	return h.translator.T(locale, key, data)
}
