package controllers

import (
	"log/slog"
	"net/http"

	h "eventlodging/internal/delivery/http/helpers"
	"eventlodging/internal/delivery/http/middleware"
	"eventlodging/internal/domain"
)

// HotelListSuccessResponse is the success envelope for GET /hotels.
type HotelListSuccessResponse struct {
	Data  []*domain.Hotel `json:"data"`
	Error *h.APIError     `json:"error"`
}

// RoomListSuccessResponse is the success envelope for GET /hotels/{hotelID}/rooms.
type RoomListSuccessResponse struct {
	Data  []*domain.RoomVacancy `json:"data"`
	Error *h.APIError           `json:"error"`
}

type HotelController struct {
	Logger  *slog.Logger
	Service domain.HotelService
}

func NewHotelController(logger *slog.Logger, svc domain.HotelService) *HotelController {
	return &HotelController{
		Logger:  logger,
		Service: svc,
	}
}

// ListHotels godoc
// @Summary List hotels
// @Description Lists hotels. Only users allowed to book may browse.
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.HotelListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hotels [get]
func (c *HotelController) ListHotels(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	hotels, err := c.Service.ListHotels(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, hotels)
}

// ListRooms godoc
// @Summary List a hotel's rooms
// @Description Lists the hotel's rooms with booked and available places.
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Param hotelID path string true "Hotel ID (UUID)"
// @Success 200 {object} controllers.RoomListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /hotels/{hotelID}/rooms [get]
func (c *HotelController) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	hotelID := r.PathValue("hotelID")
	if !h.ValidUUID(hotelID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid hotelID")
		return
	}

	rooms, err := c.Service.ListRooms(r.Context(), userID, hotelID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, rooms)
}
