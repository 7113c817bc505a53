package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodePaymentRequired = "payment_required"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternalError   = "internal_error"
)

// Booking failure codes. Each refines the class code its status already implies.
const (
	ErrCodeNotEnrolled          = "not_enrolled"
	ErrCodeNoTicket             = "no_ticket"
	ErrCodeTicketNotPaid        = "ticket_not_paid"
	ErrCodeTicketRemote         = "ticket_remote"
	ErrCodeTicketWithoutHotel   = "ticket_without_hotel"
	ErrCodeIneligibleTicketKind = "ineligible_ticket_kind"
	ErrCodeRoomNotFound         = "room_not_found"
	ErrCodeHotelNotFound        = "hotel_not_found"
	ErrCodeBookingNotFound      = "booking_not_found"
	ErrCodeRoomFull             = "room_full"
	ErrCodeAlreadyBooked        = "already_booked"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Error: &APIError{Code: code, Message: message},
	})
}
