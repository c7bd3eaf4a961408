package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/auth"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
	"github.com/HiralThadeshwar31/aidar-server/pkg/response"
)

// SessionStarter is the part of session.Manager the account endpoints use.
type SessionStarter interface {
	Start(c echo.Context, userID string) error
	End(c echo.Context) error
}

// AccountHandler serves register, login, logout and /@me.
type AccountHandler struct {
	svc      *Service
	sessions SessionStarter
}

func NewAccountHandler(svc *Service, sessions SessionStarter) *AccountHandler {
	return &AccountHandler{svc: svc, sessions: sessions}
}

// RegisterRoutes mounts the account endpoints. credentialLimits wrap the
// endpoints that accept a password.
func (h *AccountHandler) RegisterRoutes(api *echo.Group, credentialLimits ...echo.MiddlewareFunc) {
	api.GET("/@me", h.CurrentUser)
	api.POST("/register", h.Register, credentialLimits...)
	api.POST("/login", h.Login, credentialLimits...)
	api.POST("/logout", h.Logout)
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := response.BindBody(c, &req); err != nil {
		return err
	}

	u, err := h.svc.Register(c.Request().Context(), req)
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, ErrEmailTaken.Error())
	case errors.Is(err, db.ErrInvalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, db.ErrInvalidValue.Error())
	case err != nil:
		return err
	}

	if err := h.sessions.Start(c, u.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u.Account())
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := response.BindBody(c, &req); err != nil {
		return err
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req)
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidCredentials):
		return unauthorized()
	case err != nil:
		return err
	}

	if err := h.sessions.Start(c, u.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u.Account())
}

// Logout always succeeds, with or without a session.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.NewMessage("Logged out successfully"))
}

// CurrentUser returns the session's user. A session whose user has since
// been deleted is treated as anonymous.
func (h *AccountHandler) CurrentUser(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	if uid == "" {
		return unauthorized()
	}
	u, err := h.svc.GetUser(c.Request().Context(), uid)
	if errors.Is(err, db.ErrNotFound) {
		return unauthorized()
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u.Account())
}
