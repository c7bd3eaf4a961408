package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieConfig controls the cookie that carries the session token.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Manager moves session tokens between a Store and HTTP cookies.
type Manager struct {
	store  Store
	cookie CookieConfig
}

func NewManager(store Store, cookie CookieConfig) *Manager {
	return &Manager{store: store, cookie: cookie}
}

func (m *Manager) token(c echo.Context) string {
	ck, err := c.Cookie(m.cookie.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// Start issues a fresh session for userID and sets it on the response. Any
// session the request already carried is destroyed first.
func (m *Manager) Start(c echo.Context, userID string) error {
	ctx := c.Request().Context()
	if old := m.token(c); old != "" {
		if err := m.store.Destroy(ctx, old); err != nil {
			return err
		}
	}

	s, err := m.store.Create(ctx, userID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookie.Name,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// UserID resolves the request's session cookie. It returns ErrNotFound when
// the request carries no live session.
func (m *Manager) UserID(c echo.Context) (string, error) {
	token := m.token(c)
	if token == "" {
		return "", ErrNotFound
	}
	return m.store.Lookup(c.Request().Context(), token)
}

// End destroys the request's session, if any, and expires the cookie. It is
// safe to call without a session.
func (m *Manager) End(c echo.Context) error {
	if token := m.token(c); token != "" {
		if err := m.store.Destroy(c.Request().Context(), token); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
