package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlodging/internal/domain"
)

type hotelRepository struct {
	DB *sql.DB
}

func NewHotelRepository(db *sql.DB) domain.HotelRepository {
	return &hotelRepository{DB: db}
}

func (r *hotelRepository) List(ctx context.Context) ([]*domain.Hotel, error) {
	query := `
		SELECT id, name, image, created_at, updated_at
		FROM hotels
		ORDER BY name ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []*domain.Hotel
	for rows.Next() {
		h := &domain.Hotel{}
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if hotels == nil {
		hotels = []*domain.Hotel{}
	}
	return hotels, nil
}

func (r *hotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	query := `
		SELECT id, name, image, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`
	h := &domain.Hotel{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return h, nil
}
