package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sunsetfest/booking-backend/internal/dto"
	"github.com/sunsetfest/booking-backend/internal/service"
)

type AvailabilityHandler struct {
	svc service.InventoryService
}

func NewAvailabilityHandler(svc service.InventoryService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/availability/:kind/:id", h.GetAvailability)
}

func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	kind, err := service.ParseUnitKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid unit id")
	}

	available, err := h.svc.Available(c.Request().Context(), service.Unit{Kind: kind, ID: id})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Kind:      string(kind),
		ID:        id,
		Available: available,
	})
}
