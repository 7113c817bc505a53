package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventlodging/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID string) (*domain.BookingWithRoom, error) {
	query := `
		SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
		       r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
		FROM bookings b
		INNER JOIN rooms r ON r.id = b.room_id
		WHERE b.user_id = $1
	`
	b := &domain.BookingWithRoom{Room: &domain.Room{}}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&b.Room.ID, &b.Room.HotelID, &b.Room.Name, &b.Room.Capacity, &b.Room.CreatedAt, &b.Room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, room_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, b.UserID, b.RoomID, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBooked
		}
		return err
	}
	return nil
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, bookingID, roomID string, updatedAt time.Time) (string, error) {
	query := `
		UPDATE bookings
		SET room_id = $1, updated_at = $2
		WHERE id = $3
		RETURNING user_id
	`
	var ownerID string
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, roomID, updatedAt, bookingID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrBookingNotFound
		}
		return "", err
	}
	return ownerID, nil
}
