package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/session"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// SessionResolver maps a request's session cookie to a user id.
type SessionResolver interface {
	UserID(c echo.Context) (string, error)
}

// LoadSession attaches the session's user id to the request context when the
// request carries a live session. It never rejects a request: store errors
// are logged and the request continues as anonymous.
func LoadSession(sessions SessionResolver, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := sessions.UserID(c)
			switch {
			case err == nil:
				c.Set("user_id", uid)
				c.SetRequest(c.Request().WithContext(WithUserID(c.Request().Context(), uid)))
			case !errors.Is(err, session.ErrNotFound):
				rid, _ := c.Get("request_id").(string)
				logger.Warn().Err(err).Str("request_id", rid).Msg("session lookup failed")
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests that LoadSession left anonymous.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserIDFromContext(c.Request().Context()) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}
