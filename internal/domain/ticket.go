package domain

import (
	"context"
	"time"
)

// TicketStatus is the payment state of a ticket.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is a catalog entry describing what a ticket entitles its holder to.
// swagger:model TicketType
type TicketType struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         int       `json:"price"`
	IsRemote      bool      `json:"is_remote"`
	IncludesHotel bool      `json:"includes_hotel"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Ticket belongs to one enrollment and references one ticket type.
type Ticket struct {
	ID           string       `json:"id"`
	EnrollmentID string       `json:"enrollment_id"`
	TicketTypeID string       `json:"ticket_type_id"`
	Status       TicketStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TicketWithType bundles a ticket with its type.
type TicketWithType struct {
	Ticket
	TicketType TicketType `json:"ticket_type"`
}

// TicketRepository defines the interface for ticket storage.
type TicketRepository interface {
	// GetByEnrollmentID returns ErrNotFound when the enrollment has no ticket.
	GetByEnrollmentID(ctx context.Context, enrollmentID string) (*TicketWithType, error)
}
