package services

import (
	"context"
	"errors"
	"fmt"

	"eventlodging/internal/domain"
)

// CapacityAccountant admits bookings into rooms based on their fixed capacity.
// It only reads; the slot is taken when the caller persists the booking.
type CapacityAccountant struct {
	roomRepo domain.RoomRepository
}

// NewCapacityAccountant creates a CapacityAccountant backed by roomRepo.
func NewCapacityAccountant(roomRepo domain.RoomRepository) *CapacityAccountant {
	return &CapacityAccountant{roomRepo: roomRepo}
}

// AdmitNew admits a new booking into roomID. It fails with ErrRoomFull when the
// booking count has reached or passed the capacity.
func (a *CapacityAccountant) AdmitNew(ctx context.Context, roomID string) (*domain.Room, error) {
	room, count, err := a.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if count >= room.Capacity {
		return nil, domain.ErrRoomFull
	}
	return room, nil
}

// AdmitChange admits an existing booking moving into roomID. Unlike AdmitNew it
// only rejects when the count equals the capacity exactly, and it does not
// consider whether the moving user already occupies the room.
func (a *CapacityAccountant) AdmitChange(ctx context.Context, roomID string) (*domain.Room, error) {
	room, count, err := a.load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if count == room.Capacity {
		return nil, domain.ErrRoomFull
	}
	return room, nil
}

func (a *CapacityAccountant) load(ctx context.Context, roomID string) (*domain.Room, int, error) {
	room, err := a.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrRoomNotFound
		}
		return nil, 0, fmt.Errorf("get room: %w", err)
	}
	count, err := a.roomRepo.CountBookings(ctx, room.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	return room, count, nil
}
