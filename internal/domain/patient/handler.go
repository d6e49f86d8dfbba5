package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pedicare/pedicare/internal/platform/auth"
	"github.com/pedicare/pedicare/pkg/pagination"
	"github.com/pedicare/pedicare/pkg/scope"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
	api.POST("/patients/:id/growth", h.AppendGrowthRecord)
	api.GET("/patients/:id/analysis", h.Analysis)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	viewer := auth.ViewerFromContext(c.Request().Context())
	if !viewer.Admin {
		// Doctors always register patients under their own name.
		p.DoctorID = viewer.ID
	}

	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if !visible(c, p) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if p.DoctorID == uuid.Nil {
		p.DoctorID = existing.DoctorID
	}
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	viewer := auth.ViewerFromContext(c.Request().Context())

	filter := ListFilter{Name: c.QueryParam("name")}
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

	items, total, err := h.svc.ListPatients(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) AppendGrowthRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	var rec GrowthRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AppendGrowthRecord(c.Request().Context(), id, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Analysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	assessment, err := h.svc.Analysis(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// assessment is null when the patient has no growth history yet.
	return c.JSON(http.StatusOK, assessment)
}

func visible(c echo.Context, p *Patient) bool {
	return scope.Visible(auth.ViewerFromContext(c.Request().Context()), p)
}
