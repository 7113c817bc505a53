package services

import (
	"context"
	"errors"
	"fmt"

	"eventlodging/internal/domain"
)

type hotelService struct {
	gate      *EligibilityGate
	hotelRepo domain.HotelRepository
	roomRepo  domain.RoomRepository
}

// NewHotelService creates a HotelService. Listing requires the same eligibility as booking.
func NewHotelService(gate *EligibilityGate, hotelRepo domain.HotelRepository, roomRepo domain.RoomRepository) domain.HotelService {
	return &hotelService{
		gate:      gate,
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
	}
}

func (s *hotelService) ListHotels(ctx context.Context, userID string) ([]*domain.Hotel, error) {
	if err := s.gate.Check(ctx, userID); err != nil {
		return nil, err
	}
	hotels, err := s.hotelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	if hotels == nil {
		hotels = []*domain.Hotel{}
	}
	return hotels, nil
}

func (s *hotelService) ListRooms(ctx context.Context, userID, hotelID string) ([]*domain.RoomVacancy, error) {
	if err := s.gate.Check(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("get hotel: %w", err)
	}

	rooms, err := s.roomRepo.ListByHotelID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	result := make([]*domain.RoomVacancy, 0, len(rooms))
	for _, room := range rooms {
		booked, err := s.roomRepo.CountBookings(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("count bookings for room %s: %w", room.ID, err)
		}
		result = append(result, domain.NewRoomVacancy(room, booked))
	}
	return result, nil
}
