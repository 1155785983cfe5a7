package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sunsetfest/booking-backend/internal/dto"
	"github.com/sunsetfest/booking-backend/internal/service"
)

type BookingHandler struct {
	svc        service.BookingService
	paymentSvc service.PaymentService
}

func NewBookingHandler(svc service.BookingService, paymentSvc service.PaymentService) *BookingHandler {
	return &BookingHandler{svc: svc, paymentSvc: paymentSvc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.DELETE("/:id", h.CancelBooking)
	bookings.POST("/:id/payments", h.RegisterPayment)

	e.GET("/api/v1/payments/:session_id/booking", h.GetBookingBySession)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.CreateBookingInput{
		UserID:        req.UserID,
		EventDateID:   req.EventDateID,
		PricingPlanID: req.PricingPlanID,
		GroupSizeID:   req.GroupSizeID,
		TicketHoldID:  req.TicketHoldID,
	}
	if req.HotelBooking != nil {
		input.HotelBooking = &service.HotelBookingInput{
			AccommodationID: req.HotelBooking.AccommodationID,
			CheckInDate:     req.HotelBooking.CheckInDate,
			CheckOutDate:    req.HotelBooking.CheckOutDate,
		}
	}
	for _, r := range req.Rooms {
		input.Rooms = append(input.Rooms, service.BookingRoomInput{
			RoomID:   r.RoomID,
			Quantity: r.Quantity,
		})
	}
	for _, a := range req.AddOns {
		input.AddOns = append(input.AddOns, service.BookingAddOnInput{
			AddOnID:    a.AddOnID,
			TimeSlotID: a.TimeSlotID,
			Quantity:   a.Quantity,
		})
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) RegisterPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.RegisterPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.paymentSvc.RegisterPayment(c.Request().Context(), id, req.SessionID, req.Currency)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *BookingHandler) GetBookingBySession(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	booking, err := h.paymentSvc.GetBookingBySession(c.Request().Context(), sessionID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
