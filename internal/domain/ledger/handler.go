package ledger

import (
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
	api.GET("/transactions", h.ListTransactions)
	api.POST("/transactions", h.CreateTransaction)
	api.GET("/transactions/:id", h.GetTransaction)
	api.PUT("/transactions/:id", h.UpdateTransaction)
	api.DELETE("/transactions/:id", h.DeleteTransaction)
}

func (h *Handler) CreateTransaction(c echo.Context) error {
	var t Transaction
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	viewer := auth.ViewerFromContext(c.Request().Context())
	if !viewer.Admin {
		t.DoctorID = viewer.ID
	}

	if err := h.svc.CreateTransaction(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil || !visible(c, t) {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}

	var t Transaction
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if t.DoctorID == uuid.Nil {
		t.DoctorID = existing.DoctorID
	}
	if err := h.svc.UpdateTransaction(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetTransaction(c.Request().Context(), id)
	if err != nil || !visible(c, existing) {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	if err := h.svc.DeleteTransaction(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTransactions(c echo.Context) error {
	pg := pagination.FromContext(c)
	viewer := auth.ViewerFromContext(c.Request().Context())

	filter := ListFilter{
		Type:     c.QueryParam("type"),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
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

	items, total, err := h.svc.ListTransactions(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func visible(c echo.Context, t *Transaction) bool {
	return scope.Visible(auth.ViewerFromContext(c.Request().Context()), t)
}
