package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/trendwyse/dashboard/internal/api/handler"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

// Auth validates the bearer JWT, rejects revoked tokens and injects the
// claims into the echo context. Every rejection is a bare 401.
func Auth(jwtSecret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.ErrUnauthorized
			}

			claims := jwt.MapClaims{}
			tkn, err := parser.ParseWithClaims(parts[1], claims, keyFunc)
			if err != nil || !tkn.Valid {
				return echo.ErrUnauthorized
			}

			sub, _ := claims.GetSubject()
			jti, _ := claims["jti"].(string)
			exp, _ := claims.GetExpirationTime()
			if sub == "" || jti == "" || exp == nil {
				return echo.ErrUnauthorized
			}

			revoked, err := denylist.IsRevoked(c.Request().Context(), jti)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
			}
			if revoked {
				return echo.ErrUnauthorized
			}

			c.Set(handler.CtxUserID, sub)
			c.Set(handler.CtxUsername, claims["username"])
			c.Set(handler.CtxRole, claims["role"])
			c.Set(handler.CtxTokenID, jti)
			c.Set(handler.CtxExpiresAt, exp.Time)

			return next(c)
		}
	}
}
