package domain

import "errors"

// Error classes. Callers map these to response statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRequired = errors.New("payment required")
)

// ErrInvalidCredentials is returned by sign-in when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// BookingError is a typed admission failure. Kind is the class it belongs to (one of the
// class sentinels above, or another BookingError); Message is safe to show to the user.
type BookingError struct {
	Kind    error
	Message string
}

func (e *BookingError) Error() string { return e.Message }

func (e *BookingError) Unwrap() error { return e.Kind }

// Eligibility failures.
var (
	ErrNotEnrolled          = &BookingError{Kind: ErrForbidden, Message: "user must be enrolled"}
	ErrNoTicket             = &BookingError{Kind: ErrForbidden, Message: "user must have a ticket"}
	ErrTicketNotPaid        = &BookingError{Kind: ErrPaymentRequired, Message: "ticket status must be PAID"}
	ErrIneligibleTicketKind = &BookingError{Kind: ErrForbidden, Message: "ineligible ticket kind"}
	ErrTicketRemote         = &BookingError{Kind: ErrIneligibleTicketKind, Message: "ticket must be in-person"}
	ErrTicketWithoutHotel   = &BookingError{Kind: ErrIneligibleTicketKind, Message: "ticket must include hotel"}
)

// Room and booking failures.
var (
	ErrRoomNotFound    = &BookingError{Kind: ErrNotFound, Message: "room not found"}
	ErrHotelNotFound   = &BookingError{Kind: ErrNotFound, Message: "hotel not found"}
	ErrBookingNotFound = &BookingError{Kind: ErrNotFound, Message: "booking not found"}
	ErrRoomFull        = &BookingError{Kind: ErrForbidden, Message: "room has reached its full capacity"}
	ErrAlreadyBooked   = &BookingError{Kind: ErrForbidden, Message: "user already has a booking"}
)
