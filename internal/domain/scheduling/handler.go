package scheduling

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pedicare/pedicare/internal/platform/assistant"
	"github.com/pedicare/pedicare/internal/platform/auth"
	"github.com/pedicare/pedicare/pkg/pagination"
	"github.com/pedicare/pedicare/pkg/scope"
)

type Handler struct {
	svc       *Service
	assistant assistant.Summarizer
}

func NewHandler(svc *Service, summarizer assistant.Summarizer) *Handler {
	return &Handler{svc: svc, assistant: summarizer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)
	api.POST("/appointments/:id/summary", h.SummarizeConsultation)
	api.POST("/assistant/triage", h.TriageSymptoms)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	viewer := auth.ViewerFromContext(c.Request().Context())
	if !viewer.Admin {
		a.DoctorID = viewer.ID
	}

	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		return cascadeHTTPError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil || !visible(c, a) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}

	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	if a.DoctorID == uuid.Nil {
		a.DoctorID = existing.DoctorID
	}
	if a.PatientID == uuid.Nil {
		a.PatientID = existing.PatientID
	}
	if err := h.svc.UpdateAppointment(c.Request().Context(), &a); err != nil {
		return cascadeHTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return cascadeHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	viewer := auth.ViewerFromContext(c.Request().Context())

	filter := ListFilter{
		Status:   c.QueryParam("status"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		filter.PatientID = &id
	}
	if viewer.Admin {
		if docID := c.QueryParam("doctor_id"); docID != "" {
			did, err := uuid.Parse(docID)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor_id")
			}
			filter.DoctorID = &did
		}
	} else {
		did := viewer.ID
		filter.DoctorID = &did
	}

	items, total, err := h.svc.ListAppointments(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// SummarizeConsultation asks the assistant for a clinical summary of a
// finished visit, built from its recorded notes. The assistant always
// answers; failures come back as a canned fallback message.
func (h *Handler) SummarizeConsultation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil || !visible(c, a) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}

	summary := h.assistant.Summarize(c.Request().Context(), consultationNotes(a))
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

type triageRequest struct {
	Symptoms string `json:"symptoms"`
}

func (h *Handler) TriageSymptoms(c echo.Context) error {
	var req triageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symptoms are required")
	}

	analysis := h.assistant.Triage(c.Request().Context(), req.Symptoms)
	return c.JSON(http.StatusOK, map[string]string{"analysis": analysis})
}

func consultationNotes(a *Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Paciente: %s\n", a.PatientName)
	fmt.Fprintf(&b, "Fecha: %s\n", a.DateOnly())
	fmt.Fprintf(&b, "Motivo: %s\n", a.Reason)
	if a.Symptoms != nil {
		fmt.Fprintf(&b, "Síntomas: %s\n", *a.Symptoms)
	}
	if a.PhysicalExam != nil {
		fmt.Fprintf(&b, "Exploración física: %s\n", *a.PhysicalExam)
	}
	if a.Diagnosis != nil {
		fmt.Fprintf(&b, "Diagnóstico: %s\n", *a.Diagnosis)
	}
	if a.Treatment != nil {
		fmt.Fprintf(&b, "Tratamiento: %s\n", *a.Treatment)
	}
	return b.String()
}

// cascadeHTTPError maps synchronizer failures onto HTTP statuses. A
// partial cascade or ambiguous ledger link is a server-side
// consistency problem, not a bad request.
func cascadeHTTPError(err error) error {
	var partial *PartialCascadeError
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrAmbiguousLedgerLink):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &partial):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

func visible(c echo.Context, a *Appointment) bool {
	return scope.Visible(auth.ViewerFromContext(c.Request().Context()), a)
}
