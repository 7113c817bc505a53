package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventlodging/internal/delivery/http/helpers"
	"eventlodging/internal/domain"
)

// bookingErrorCodes is checked in order; ticket kind refinements come before the
// kind they unwrap to.
var bookingErrorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrNotEnrolled, h.ErrCodeNotEnrolled},
	{domain.ErrNoTicket, h.ErrCodeNoTicket},
	{domain.ErrTicketNotPaid, h.ErrCodeTicketNotPaid},
	{domain.ErrTicketRemote, h.ErrCodeTicketRemote},
	{domain.ErrTicketWithoutHotel, h.ErrCodeTicketWithoutHotel},
	{domain.ErrIneligibleTicketKind, h.ErrCodeIneligibleTicketKind},
	{domain.ErrRoomNotFound, h.ErrCodeRoomNotFound},
	{domain.ErrHotelNotFound, h.ErrCodeHotelNotFound},
	{domain.ErrBookingNotFound, h.ErrCodeBookingNotFound},
	{domain.ErrRoomFull, h.ErrCodeRoomFull},
	{domain.ErrAlreadyBooked, h.ErrCodeAlreadyBooked},
}

// writeServiceError maps a service error to its response. Typed booking errors keep
// their message; anything unrecognised is logged and reported as internal_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := http.StatusInternalServerError, h.ErrCodeInternalError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, h.ErrCodeNotFound
	case errors.Is(err, domain.ErrPaymentRequired):
		status, code = http.StatusPaymentRequired, h.ErrCodePaymentRequired
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, h.ErrCodeForbidden
	}

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, status, code, "internal server error")
		return
	}

	message := err.Error()
	var bookingErr *domain.BookingError
	if errors.As(err, &bookingErr) {
		message = bookingErr.Message
	}
	for _, bc := range bookingErrorCodes {
		if errors.Is(err, bc.err) {
			code = bc.code
			break
		}
	}
	h.WriteJSONError(w, status, code, message)
}
