package domain

import (
	"context"
	"time"
)

// Hotel is a lodging facility that owns rooms.
// swagger:model Hotel
type Hotel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room is a bookable lodging unit with a fixed capacity (at least 1).
// swagger:model Room
type Room struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomVacancy is a room together with how many of its slots are taken.
// swagger:model RoomVacancy
type RoomVacancy struct {
	*Room
	Booked    int `json:"booked"`
	Available int `json:"available"`
}

// NewRoomVacancy computes the vacancy of room given its current booking count.
// Available never goes below zero.
func NewRoomVacancy(room *Room, booked int) *RoomVacancy {
	available := room.Capacity - booked
	if available < 0 {
		available = 0
	}
	return &RoomVacancy{Room: room, Booked: booked, Available: available}
}

// HotelRepository defines the interface for hotel storage.
type HotelRepository interface {
	List(ctx context.Context) ([]*Hotel, error)
	// GetByID returns ErrNotFound when no hotel matches.
	GetByID(ctx context.Context, id string) (*Hotel, error)
}

// RoomRepository defines the interface for room storage.
type RoomRepository interface {
	// GetByID returns ErrNotFound when no room matches. Inside a transaction the
	// row is locked until the transaction ends.
	GetByID(ctx context.Context, id string) (*Room, error)
	CountBookings(ctx context.Context, roomID string) (int, error)
	ListByHotelID(ctx context.Context, hotelID string) ([]*Room, error)
}

// HotelService lists lodging options for users allowed to book.
type HotelService interface {
	ListHotels(ctx context.Context, userID string) ([]*Hotel, error)
	ListRooms(ctx context.Context, userID, hotelID string) ([]*RoomVacancy, error)
}
