package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlodging/internal/domain"
)

type enrollmentRepository struct {
	DB *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) domain.EnrollmentRepository {
	return &enrollmentRepository{DB: db}
}

func (r *enrollmentRepository) GetByUserID(ctx context.Context, userID string) (*domain.Enrollment, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM enrollments
		WHERE user_id = $1
	`
	e := &domain.Enrollment{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, userID).
		Scan(&e.ID, &e.UserID, &e.Name, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
