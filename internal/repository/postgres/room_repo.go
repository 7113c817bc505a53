package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlodging/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{DB: db}
}

// GetByID locks the room row with FOR UPDATE when ctx carries a transaction, so
// concurrent admissions into the same room are serialised until commit.
func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `
		SELECT id, hotel_id, name, capacity, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`
	if txFromContext(ctx) != nil {
		query += ` FOR UPDATE`
	}
	room := &domain.Room{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) CountBookings(ctx context.Context, roomID string) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE room_id = $1`
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, roomID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *roomRepository) ListByHotelID(ctx context.Context, hotelID string) ([]*domain.Room, error) {
	query := `
		SELECT id, hotel_id, name, capacity, created_at, updated_at
		FROM rooms
		WHERE hotel_id = $1
		ORDER BY name ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}
