package services

import (
	"context"
	"errors"
	"fmt"

	"eventlodging/internal/domain"
)

// ticketRule is one eligibility predicate over a ticket. It returns nil when the ticket passes.
type ticketRule func(t *domain.TicketWithType) error

// ticketRules are evaluated in order; the first failure wins. Payment is checked
// before ticket kind, so an unpaid remote ticket reports ErrTicketNotPaid.
var ticketRules = []ticketRule{
	func(t *domain.TicketWithType) error {
		if t.Status != domain.TicketStatusPaid {
			return domain.ErrTicketNotPaid
		}
		return nil
	},
	func(t *domain.TicketWithType) error {
		if t.TicketType.IsRemote {
			return domain.ErrTicketRemote
		}
		return nil
	},
	func(t *domain.TicketWithType) error {
		if !t.TicketType.IncludesHotel {
			return domain.ErrTicketWithoutHotel
		}
		return nil
	},
}

// EligibilityGate decides whether a user may hold a room booking.
type EligibilityGate struct {
	enrollmentRepo domain.EnrollmentRepository
	ticketRepo     domain.TicketRepository
}

// NewEligibilityGate creates an EligibilityGate backed by the given repositories.
func NewEligibilityGate(enrollmentRepo domain.EnrollmentRepository, ticketRepo domain.TicketRepository) *EligibilityGate {
	return &EligibilityGate{
		enrollmentRepo: enrollmentRepo,
		ticketRepo:     ticketRepo,
	}
}

// Check returns nil when userID is enrolled and holds a paid, in-person, hotel-inclusive
// ticket. Otherwise it returns the first failing condition.
func (g *EligibilityGate) Check(ctx context.Context, userID string) error {
	enrollment, err := g.enrollmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotEnrolled
		}
		return fmt.Errorf("get enrollment: %w", err)
	}

	ticket, err := g.ticketRepo.GetByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNoTicket
		}
		return fmt.Errorf("get ticket: %w", err)
	}

	return checkTicket(ticket)
}

func checkTicket(t *domain.TicketWithType) error {
	for _, rule := range ticketRules {
		if err := rule(t); err != nil {
			return err
		}
	}
	return nil
}
