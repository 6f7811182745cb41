package application

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims holds what we read from a WordPress JWT without verifying it.
// The signature is checked by the remote API, never here.
type tokenClaims struct {
	expiresAt time.Time
	userID    *int64
}

func (c tokenClaims) expired(now time.Time) bool {
	return !c.expiresAt.IsZero() && !now.Before(c.expiresAt)
}

// inspectToken reports false when token is not a JWT; opaque tokens are then
// handled by lookup alone.
func inspectToken(token string) (tokenClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}, false
	}

	var out tokenClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	out.userID = wordpressUserID(claims)
	return out, true
}

// wordpressUserID reads data.user.id, where the JWT-auth plugin puts the WordPress user.
func wordpressUserID(claims jwt.MapClaims) *int64 {
	data, _ := claims["data"].(map[string]any)
	user, _ := data["user"].(map[string]any)
	switch id := user["id"].(type) {
	case float64:
		v := int64(id)
		return &v
	case string:
		if v, err := strconv.ParseInt(id, 10, 64); err == nil {
			return &v
		}
	}
	return nil
}
