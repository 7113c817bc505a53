package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"eventlodging/internal/delivery/http/helpers"
	"eventlodging/internal/domain"

	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "0b6f7c2e-1111-4a4a-8b8b-000000000001"
	testRoomID  = "0b6f7c2e-2222-4a4a-8b8b-000000000002"
	testBookID  = "0b6f7c2e-3333-4a4a-8b8b-000000000003"
	testHotelID = "0b6f7c2e-4444-4a4a-8b8b-000000000004"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeBookingService implements domain.BookingService and records its last call.
type fakeBookingService struct {
	booking   *domain.BookingWithRoom
	bookingID string
	err       error

	gotUserID    string
	gotRoomID    string
	gotBookingID string
}

func (f *fakeBookingService) Create(_ context.Context, userID, roomID string) (string, error) {
	f.gotUserID, f.gotRoomID = userID, roomID
	return f.bookingID, f.err
}

func (f *fakeBookingService) Get(_ context.Context, userID string) (*domain.BookingWithRoom, error) {
	f.gotUserID = userID
	return f.booking, f.err
}

func (f *fakeBookingService) Update(_ context.Context, userID, bookingID, newRoomID string) (string, error) {
	f.gotUserID, f.gotBookingID, f.gotRoomID = userID, bookingID, newRoomID
	return f.bookingID, f.err
}

// fakeHotelService implements domain.HotelService.
type fakeHotelService struct {
	hotels []*domain.Hotel
	rooms  []*domain.RoomVacancy
	err    error

	gotHotelID string
}

func (f *fakeHotelService) ListHotels(_ context.Context, _ string) ([]*domain.Hotel, error) {
	return f.hotels, f.err
}

func (f *fakeHotelService) ListRooms(_ context.Context, _ string, hotelID string) ([]*domain.RoomVacancy, error) {
	f.gotHotelID = hotelID
	return f.rooms, f.err
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) SignIn(_ context.Context, _, _ string) (string, error) {
	return f.token, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}
