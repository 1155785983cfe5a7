package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventDateNotFound     = errors.New("event date not found")
	ErrPricingPlanNotFound   = errors.New("pricing plan not found")
	ErrGroupSizeNotFound     = errors.New("group size not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrRoomNotFound          = errors.New("room not found")
	ErrAddOnNotFound         = errors.New("add-on not found")
	ErrTimeSlotNotFound      = errors.New("add-on time slot not found")
	ErrHoldNotFound          = errors.New("ticket hold not found or expired")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentNotFound       = errors.New("payment not found")

	// Cross-hierarchy references are rejected before any availability math.
	ErrPlanEventDateMismatch     = errors.New("pricing plan does not belong to the selected event date")
	ErrGroupSizePlanMismatch     = errors.New("group size does not belong to the selected pricing plan")
	ErrRoomAccommodationMismatch = errors.New("room does not belong to the selected accommodation")
	ErrTimeSlotAddOnMismatch     = errors.New("time slot does not belong to the selected add-on")
	ErrTimeSlotRequired          = errors.New("add-on requires a time slot")

	ErrHoldExpiredOrMismatched = errors.New("ticket hold is expired, belongs to another pricing plan, or does not cover the group size")
	ErrHoldLifetimeExceeded    = errors.New("hold extension exceeds the maximum hold lifetime")

	ErrHotelDatesInvalid     = errors.New("check-out date must be after check-in date")
	ErrHotelDatesUnavailable = errors.New("accommodation is already booked for the selected dates")

	ErrAddOnMinPersons = errors.New("add-on quantity is below the minimum number of persons")

	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
)

// InsufficientInventoryError names the exact unit whose availability fell
// short, so the caller can tell which part of a composite request to fix.
type InsufficientInventoryError struct {
	Unit      string
	Title     string
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf(
		"not enough availability for %s %q: requested %d, available %d",
		e.Unit, e.Title, e.Requested, e.Available,
	)
}
