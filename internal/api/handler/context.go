package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Keys under which the Auth middleware stores token claims.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxTokenID   = "token_id"
	CtxExpiresAt = "token_expires_at"
)

// ctxUserID returns the authenticated user id. A missing id means the route
// was mounted without the Auth middleware; treat it as unauthenticated.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(CtxUserID).(string)
	if id == "" {
		return "", echo.ErrUnauthorized
	}
	return id, nil
}

func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get(CtxTokenID).(string)
	expiresAt, _ = c.Get(CtxExpiresAt).(time.Time)
	return tokenID, expiresAt
}
