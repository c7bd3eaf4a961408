package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
	"github.com/HiralThadeshwar31/aidar-server/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/users", h.ListUsers)

	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
}

// patientError maps service errors to HTTP errors. Unrecognized errors are
// returned as is and become a 500.
func patientError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case errors.Is(err, db.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "Patient with this email already exists")
	case errors.Is(err, db.ErrInvalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, db.ErrInvalidValue.Error())
	}
	return err
}

// -- Users --

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Response())
	}
	return c.JSON(http.StatusOK, out)
}

// -- Patients --

func (h *Handler) ListPatients(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, p.Response())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req CreatePatientRequest
	if err := response.BindBody(c, &req); err != nil {
		return err
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusCreated, response.NewCreated(p.ID, "Patient created successfully"))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, p.Response())
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var patch PatientPatch
	if err := response.BindBody(c, &patch); err != nil {
		return err
	}
	if _, err := h.svc.UpdatePatient(c.Request().Context(), c.Param("id"), patch); err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Patient updated successfully"))
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return patientError(err)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Patient deleted successfully"))
}
