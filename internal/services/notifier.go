package services

import (
	"context"
	"log/slog"

	"eventlodging/internal/domain"
)

type bookingNotifier struct {
	publisher    domain.BookingEventPublisher
	emailService domain.EmailService
	userRepo     domain.UserRepository
	logger       *slog.Logger
}

// NewBookingNotifier returns a BookingNotifier that publishes each event and emails
// the booking owner. publisher and emailService may be nil to skip that channel.
// Failures are logged, never returned: the booking is already committed.
func NewBookingNotifier(
	publisher domain.BookingEventPublisher,
	emailService domain.EmailService,
	userRepo domain.UserRepository,
	logger *slog.Logger,
) domain.BookingNotifier {
	return &bookingNotifier{
		publisher:    publisher,
		emailService: emailService,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (n *bookingNotifier) Notify(ctx context.Context, event *domain.BookingEvent) {
	if n.publisher != nil {
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.logger.WarnContext(ctx, "publish booking event failed",
				"type", event.Type, "booking_id", event.BookingID, "err", err)
		}
	}

	if n.emailService == nil || n.userRepo == nil {
		return
	}
	user, err := n.userRepo.GetByID(ctx, event.UserID)
	if err != nil {
		n.logger.WarnContext(ctx, "load booking owner failed", "user_id", event.UserID, "err", err)
		return
	}
	data := &domain.BookingConfirmedEmailData{
		Email:     user.Email,
		Name:      user.Name,
		BookingID: event.BookingID,
		RoomID:    event.RoomID,
		Changed:   event.Type == domain.BookingChanged,
	}
	if err := n.emailService.SendBookingConfirmed(ctx, data); err != nil {
		n.logger.WarnContext(ctx, "send booking confirmation failed", "booking_id", event.BookingID, "err", err)
		return
	}
	n.logger.InfoContext(ctx, "booking confirmation sent", "booking_id", event.BookingID, "user_id", event.UserID)
}
