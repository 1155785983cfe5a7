package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sunsetfest/booking-backend/internal/service"
)

// toHTTPError maps service errors onto HTTP status codes. Unknown errors
// surface as 500 so infrastructure failures are never mistaken for client
// mistakes.
func toHTTPError(err error) *echo.HTTPError {
	var insufficient *service.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		return echo.NewHTTPError(http.StatusConflict, insufficient.Error())
	}

	switch {
	case errors.Is(err, service.ErrEventDateNotFound),
		errors.Is(err, service.ErrPricingPlanNotFound),
		errors.Is(err, service.ErrGroupSizeNotFound),
		errors.Is(err, service.ErrAccommodationNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrAddOnNotFound),
		errors.Is(err, service.ErrTimeSlotNotFound),
		errors.Is(err, service.ErrHoldNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrPlanEventDateMismatch),
		errors.Is(err, service.ErrGroupSizePlanMismatch),
		errors.Is(err, service.ErrRoomAccommodationMismatch),
		errors.Is(err, service.ErrTimeSlotAddOnMismatch),
		errors.Is(err, service.ErrTimeSlotRequired),
		errors.Is(err, service.ErrHoldExpiredOrMismatched),
		errors.Is(err, service.ErrHotelDatesInvalid),
		errors.Is(err, service.ErrAddOnMinPersons),
		errors.Is(err, service.ErrBookingAlreadyCancelled):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrHotelDatesUnavailable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrHoldLifetimeExceeded):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
