package clinical

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

// RegisterRoutes mounts the vitals and physician note endpoints. On GET the
// :id segment is a patient id; on PUT and DELETE it is the record's own id.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/vitals", h.ListVitals)
	api.POST("/vitals", h.CreateVitals)
	api.GET("/vitals/:id", h.GetPatientVitals)
	api.PUT("/vitals/:id", h.UpdateVitals)
	api.DELETE("/vitals/:id", h.DeleteVitals)

	api.GET("/physician_notes", h.ListNotes)
	api.POST("/physician_notes", h.CreateNote)
	api.GET("/physician_notes/:id", h.GetPatientNotes)
	api.PUT("/physician_notes/:id", h.UpdateNote)
	api.DELETE("/physician_notes/:id", h.DeleteNote)
}

var referenceMessages = map[string]string{
	"vitals_patient_id_fkey":            "patient_id does not match an existing patient",
	"physician_notes_patient_id_fkey":   "patient_id does not match an existing patient",
	"physician_notes_physician_id_fkey": "physician_id does not match an existing user",
}

// recordError maps service errors to HTTP errors. notFound is the message
// used for a missing record or an empty patient listing.
func recordError(err error, notFound string) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrInvalidStartDate):
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidStartDate.Error())
	case errors.Is(err, db.ErrInvalidReference):
		msg, ok := referenceMessages[db.ConstraintName(err)]
		if !ok {
			msg = "referenced record does not exist"
		}
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	case errors.Is(err, db.ErrInvalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, db.ErrInvalidValue.Error())
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	}
	return err
}

// -- Vitals --

const vitalsNotFound = "Vitals not found"

func (h *Handler) ListVitals(c echo.Context) error {
	items, err := h.svc.ListVitals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vitalsResponses(items))
}

func (h *Handler) CreateVitals(c echo.Context) error {
	var req CreateVitalsRequest
	if err := response.BindBody(c, &req); err != nil {
		return err
	}
	v, err := h.svc.CreateVitals(c.Request().Context(), req)
	if err != nil {
		return recordError(err, vitalsNotFound)
	}
	return c.JSON(http.StatusCreated, response.NewCreated(v.ID, "Vitals created successfully"))
}

// GetPatientVitals lists the vitals of patient :id. An empty result is a 404.
func (h *Handler) GetPatientVitals(c echo.Context) error {
	items, err := h.svc.PatientVitals(c.Request().Context(), c.Param("id"), c.QueryParam("start_date"))
	if err != nil {
		return recordError(err, vitalsNotFound)
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, vitalsNotFound)
	}
	return c.JSON(http.StatusOK, vitalsResponses(items))
}

func (h *Handler) UpdateVitals(c echo.Context) error {
	var patch VitalsPatch
	if err := response.BindBody(c, &patch); err != nil {
		return err
	}
	if _, err := h.svc.UpdateVitals(c.Request().Context(), c.Param("id"), patch); err != nil {
		return recordError(err, vitalsNotFound)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Vitals updated successfully"))
}

func (h *Handler) DeleteVitals(c echo.Context) error {
	if err := h.svc.DeleteVitals(c.Request().Context(), c.Param("id")); err != nil {
		return recordError(err, vitalsNotFound)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Vitals deleted successfully"))
}

func vitalsResponses(items []*Vitals) []VitalsResponse {
	out := make([]VitalsResponse, 0, len(items))
	for _, v := range items {
		out = append(out, v.Response())
	}
	return out
}

// -- Physician Notes --

const (
	noteNotFound  = "Note not found"
	notesNotFound = "No notes found"
)

func (h *Handler) ListNotes(c echo.Context) error {
	items, err := h.svc.ListNotes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, noteResponses(items))
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := response.BindBody(c, &req); err != nil {
		return err
	}
	n, err := h.svc.CreateNote(c.Request().Context(), req)
	if err != nil {
		return recordError(err, noteNotFound)
	}
	return c.JSON(http.StatusCreated, response.NewCreated(n.ID, "Note created successfully"))
}

// GetPatientNotes lists the notes of patient :id. An empty result is a 404.
func (h *Handler) GetPatientNotes(c echo.Context) error {
	items, err := h.svc.PatientNotes(c.Request().Context(), c.Param("id"), c.QueryParam("start_date"))
	if err != nil {
		return recordError(err, notesNotFound)
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, notesNotFound)
	}
	return c.JSON(http.StatusOK, noteResponses(items))
}

func (h *Handler) UpdateNote(c echo.Context) error {
	var patch NotePatch
	if err := response.BindBody(c, &patch); err != nil {
		return err
	}
	if _, err := h.svc.UpdateNote(c.Request().Context(), c.Param("id"), patch); err != nil {
		return recordError(err, noteNotFound)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Note updated successfully"))
}

func (h *Handler) DeleteNote(c echo.Context) error {
	if err := h.svc.DeleteNote(c.Request().Context(), c.Param("id")); err != nil {
		return recordError(err, noteNotFound)
	}
	return c.JSON(http.StatusOK, response.NewMessage("Note deleted successfully"))
}

func noteResponses(items []*PhysicianNote) []PhysicianNoteResponse {
	out := make([]PhysicianNoteResponse, 0, len(items))
	for _, n := range items {
		out = append(out, n.Response())
	}
	return out
}
