package controllers

import (
	"log/slog"
	"net/http"

	h "eventlodging/internal/delivery/http/helpers"
	"eventlodging/internal/delivery/http/middleware"
	"eventlodging/internal/domain"
)

// BookingRoomRequest is the request body for POST /booking and PUT /booking/{bookingID}.
type BookingRoomRequest struct {
	RoomID string `json:"roomId"`
}

// Validate implements helpers.Validator.
func (b BookingRoomRequest) Validate() []string {
	if b.RoomID == "" {
		return []string{"roomId is required"}
	}
	if !h.ValidUUID(b.RoomID) {
		return []string{"roomId must be a UUID"}
	}
	return nil
}

// BookingIDResponse is the data returned by booking mutations.
type BookingIDResponse struct {
	BookingID string `json:"bookingId"`
}

// BookingSuccessResponse is the success envelope for GET /booking.
type BookingSuccessResponse struct {
	Data  *domain.BookingWithRoom `json:"data"`
	Error *h.APIError             `json:"error"`
}

// BookingIDSuccessResponse is the success envelope for POST /booking and PUT /booking/{bookingID}.
type BookingIDSuccessResponse struct {
	Data  *BookingIDResponse `json:"data"`
	Error *h.APIError        `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// GetBooking godoc
// @Summary Get my booking
// @Description Returns the authenticated user's booking with its room.
// @Tags booking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BookingSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /booking [get]
func (c *BookingController) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Service.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, booking)
}

// CreateBooking godoc
// @Summary Book a room
// @Description Books the room for the authenticated user. Requires an enrollment with a paid, in-person ticket that includes hotel.
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.BookingRoomRequest true "Room to book"
// @Success 200 {object} controllers.BookingIDSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /booking [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req BookingRoomRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	bookingID, err := c.Service.Create(r.Context(), userID, req.RoomID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingIDResponse{BookingID: bookingID})
}

// ChangeBooking godoc
// @Summary Change my booking's room
// @Description Moves the booking to another room. The booking is found by the authenticated user.
// @Tags booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Param body body controllers.BookingRoomRequest true "New room"
// @Success 200 {object} controllers.BookingIDSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /booking/{bookingID} [put]
func (c *BookingController) ChangeBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bookingID := r.PathValue("bookingID")
	if !h.ValidUUID(bookingID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid bookingID")
		return
	}
	var req BookingRoomRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	updatedID, err := c.Service.Update(r.Context(), userID, bookingID, req.RoomID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingIDResponse{BookingID: updatedID})
}
