package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventlodging/internal/delivery/http/helpers"
	"eventlodging/internal/delivery/http/middleware"
	"eventlodging/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		body        string
		svc         *fakeBookingService
		wantStatus  int
		wantCode    string
		wantMessage string
		wantCalled  bool
	}{
		{
			name:       "success",
			userID:     testUserID,
			body:       fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:        &fakeBookingService{bookingID: testBookID},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "unauthenticated",
			body:       fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:        &fakeBookingService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:        "missing roomId",
			userID:      testUserID,
			body:        `{}`,
			svc:         &fakeBookingService{},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "roomId is required",
		},
		{
			name:        "roomId is not a UUID",
			userID:      testUserID,
			body:        `{"roomId":"42"}`,
			svc:         &fakeBookingService{},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "roomId must be a UUID",
		},
		{
			name:        "not enrolled",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrNotEnrolled},
			wantStatus:  http.StatusForbidden,
			wantCode:    helpers.ErrCodeNotEnrolled,
			wantMessage: "user must be enrolled",
			wantCalled:  true,
		},
		{
			name:        "ticket not paid",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrTicketNotPaid},
			wantStatus:  http.StatusPaymentRequired,
			wantCode:    helpers.ErrCodeTicketNotPaid,
			wantMessage: "ticket status must be PAID",
			wantCalled:  true,
		},
		{
			name:        "remote ticket",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrTicketRemote},
			wantStatus:  http.StatusForbidden,
			wantCode:    helpers.ErrCodeTicketRemote,
			wantMessage: "ticket must be in-person",
			wantCalled:  true,
		},
		{
			name:        "room full",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrRoomFull},
			wantStatus:  http.StatusForbidden,
			wantCode:    helpers.ErrCodeRoomFull,
			wantMessage: "room has reached its full capacity",
			wantCalled:  true,
		},
		{
			name:        "room not found",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrRoomNotFound},
			wantStatus:  http.StatusNotFound,
			wantCode:    helpers.ErrCodeRoomNotFound,
			wantMessage: "room not found",
			wantCalled:  true,
		},
		{
			name:        "store failure is hidden",
			userID:      testUserID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: fmt.Errorf("count bookings: %w", errors.New("connection reset"))},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    helpers.ErrCodeInternalError,
			wantMessage: "internal server error",
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewBookingController(discardLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			rr := httptest.NewRecorder()
			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCalled {
				assert.Equal(t, testUserID, tt.svc.gotUserID)
				assert.Equal(t, testRoomID, tt.svc.gotRoomID)
			} else {
				assert.Empty(t, tt.svc.gotUserID)
			}

			if tt.wantStatus == http.StatusOK {
				var resp BookingIDSuccessResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.Nil(t, resp.Error)
				assert.Equal(t, testBookID, resp.Data.BookingID)
				return
			}
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			}
		})
	}
}

func TestBookingController_GetBooking(t *testing.T) {
	booking := &domain.BookingWithRoom{
		Booking: domain.Booking{ID: testBookID, UserID: testUserID, RoomID: testRoomID},
		Room:    &domain.Room{ID: testRoomID, HotelID: testHotelID, Name: "101", Capacity: 3},
	}

	tests := []struct {
		name       string
		userID     string
		svc        *fakeBookingService
		wantStatus int
		wantCode   string
	}{
		{name: "success", userID: testUserID, svc: &fakeBookingService{booking: booking}, wantStatus: http.StatusOK},
		{name: "unauthenticated", svc: &fakeBookingService{}, wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{
			name: "no booking", userID: testUserID, svc: &fakeBookingService{err: domain.ErrBookingNotFound},
			wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewBookingController(discardLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodGet, "/booking", nil)
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			rr := httptest.NewRecorder()
			ctrl.GetBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp BookingSuccessResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.NotNil(t, resp.Data)
				assert.Equal(t, testBookID, resp.Data.ID)
				require.NotNil(t, resp.Data.Room)
				assert.Equal(t, "101", resp.Data.Room.Name)
				return
			}
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, rr).Error.Code)
		})
	}
}

func TestBookingController_ChangeBooking(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		bookingID   string
		body        string
		svc         *fakeBookingService
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "success",
			userID:     testUserID,
			bookingID:  testBookID,
			body:       fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:        &fakeBookingService{bookingID: testBookID},
			wantStatus: http.StatusOK,
		},
		{
			name:        "invalid booking id",
			userID:      testUserID,
			bookingID:   "abc",
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{},
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeBadRequest,
			wantMessage: "invalid bookingID",
		},
		{
			name:       "invalid room id",
			userID:     testUserID,
			bookingID:  testBookID,
			body:       `{"roomId":"0"}`,
			svc:        &fakeBookingService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:        "no booking",
			userID:      testUserID,
			bookingID:   testBookID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrBookingNotFound},
			wantStatus:  http.StatusNotFound,
			wantCode:    helpers.ErrCodeBookingNotFound,
			wantMessage: "booking not found",
		},
		{
			name:        "target room full",
			userID:      testUserID,
			bookingID:   testBookID,
			body:        fmt.Sprintf(`{"roomId":%q}`, testRoomID),
			svc:         &fakeBookingService{err: domain.ErrRoomFull},
			wantStatus:  http.StatusForbidden,
			wantCode:    helpers.ErrCodeRoomFull,
			wantMessage: "room has reached its full capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewBookingController(discardLogger(), tt.svc)
			mux := http.NewServeMux()
			mux.HandleFunc("PUT /booking/{bookingID}", ctrl.ChangeBooking)

			req := httptest.NewRequest(http.MethodPut, "/booking/"+tt.bookingID, strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp BookingIDSuccessResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, testBookID, resp.Data.BookingID)
				assert.Equal(t, testBookID, tt.svc.gotBookingID)
				assert.Equal(t, testRoomID, tt.svc.gotRoomID)
				return
			}
			envelope := decodeEnvelope(t, rr)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			}
		})
	}
}
