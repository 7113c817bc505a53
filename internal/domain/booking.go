package domain

import (
	"context"
	"time"
)

// Booking links one user to one room. A user holds at most one booking.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoomID    string    `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(userID, roomID string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingWithRoom bundles a booking with the room it references.
// swagger:model BookingWithRoom
type BookingWithRoom struct {
	Booking
	Room *Room `json:"room"`
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	// GetByUserID returns ErrBookingNotFound when the user has no booking.
	GetByUserID(ctx context.Context, userID string) (*BookingWithRoom, error)
	// Create inserts the booking and sets its ID. A second booking for the same
	// user fails with ErrAlreadyBooked.
	Create(ctx context.Context, b *Booking) error
	// UpdateRoom moves the booking to roomID and returns the id of the user who owns it.
	// Returns ErrBookingNotFound when no row has bookingID.
	UpdateRoom(ctx context.Context, bookingID, roomID string, updatedAt time.Time) (string, error)
}

// Transactor runs fn inside a single storage transaction. Repositories called
// with the ctx passed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingService implements the lifecycle of a user's single booking.
type BookingService interface {
	Create(ctx context.Context, userID, roomID string) (bookingID string, err error)
	Get(ctx context.Context, userID string) (*BookingWithRoom, error)
	// Update moves bookingID to newRoomID. The user's booking is looked up by userID;
	// bookingID is not checked against it.
	Update(ctx context.Context, userID, bookingID, newRoomID string) (string, error)
}

// BookingEventType names a booking state transition.
type BookingEventType string

const (
	BookingCreated BookingEventType = "booking.created"
	BookingChanged BookingEventType = "booking.changed"
)

// BookingEvent is emitted after a booking is created or moved to another room.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  string           `json:"booking_id"`
	UserID     string           `json:"user_id"`
	RoomID     string           `json:"room_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// BookingEventPublisher publishes booking events to a message broker.
type BookingEventPublisher interface {
	Publish(ctx context.Context, event *BookingEvent) error
}

// BookingNotifier is told about every successful booking transition.
type BookingNotifier interface {
	Notify(ctx context.Context, event *BookingEvent)
}
