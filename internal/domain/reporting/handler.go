package reporting

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pedicare/pedicare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c echo.Context) error {
	viewer := auth.ViewerFromContext(c.Request().Context())

	var doctorID *uuid.UUID
	if !viewer.Admin {
		id := viewer.ID
		doctorID = &id
	}

	d, err := h.svc.BuildDashboard(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
