package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sunsetfest/booking-backend/internal/dto"
	"github.com/sunsetfest/booking-backend/internal/service"
)

type HoldHandler struct {
	svc service.HoldService
}

func NewHoldHandler(svc service.HoldService) *HoldHandler {
	return &HoldHandler{svc: svc}
}

func (h *HoldHandler) RegisterRoutes(e *echo.Echo) {
	holds := e.Group("/api/v1/holds")
	holds.POST("", h.CreateHold)
	holds.GET("/:id", h.GetHold)
	holds.POST("/:id/extend", h.ExtendHold)
}

func (h *HoldHandler) CreateHold(c echo.Context) error {
	var req dto.CreateHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.CreateHoldInput{
		UserID:          req.UserID,
		PricingPlanID:   req.PricingPlanID,
		NumberOfTickets: req.NumberOfTickets,
	}
	for _, r := range req.Rooms {
		input.Rooms = append(input.Rooms, service.RoomHoldInput{
			RoomID:   r.RoomID,
			Quantity: r.Quantity,
		})
	}

	hold, err := h.svc.CreateHold(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToHoldResponse(hold))
}

func (h *HoldHandler) GetHold(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hold id")
	}

	hold, err := h.svc.GetHold(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToHoldResponse(hold))
}

func (h *HoldHandler) ExtendHold(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hold id")
	}

	var req dto.ExtendHoldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hold, err := h.svc.ExtendHold(c.Request().Context(), id, req.ExtraMinutes)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToHoldResponse(hold))
}
