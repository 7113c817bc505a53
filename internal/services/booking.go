package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventlodging/internal/domain"
)

// notifyTimeout bounds how long a request waits on event publishing and email.
const notifyTimeout = 5 * time.Second

type bookingService struct {
	gate        *EligibilityGate
	accountant  *CapacityAccountant
	bookingRepo domain.BookingRepository
	tx          domain.Transactor
	notifier    domain.BookingNotifier
}

// NewBookingService creates a BookingService. notifier may be nil.
func NewBookingService(
	gate *EligibilityGate,
	accountant *CapacityAccountant,
	bookingRepo domain.BookingRepository,
	tx domain.Transactor,
	notifier domain.BookingNotifier,
) domain.BookingService {
	return &bookingService{
		gate:        gate,
		accountant:  accountant,
		bookingRepo: bookingRepo,
		tx:          tx,
		notifier:    notifier,
	}
}

func (s *bookingService) Create(ctx context.Context, userID, roomID string) (string, error) {
	if err := s.gate.Check(ctx, userID); err != nil {
		return "", err
	}

	var booking *domain.Booking
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		room, err := s.accountant.AdmitNew(txCtx, roomID)
		if err != nil {
			return err
		}

		if _, err := s.bookingRepo.GetByUserID(txCtx, userID); err == nil {
			return domain.ErrAlreadyBooked
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get booking: %w", err)
		}

		now := time.Now()
		booking = domain.NewBooking(userID, room.ID, now, now)
		if err := s.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, domain.ErrAlreadyBooked) {
				return err
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.notify(ctx, domain.BookingCreated, booking.ID, userID, booking.RoomID)
	return booking.ID, nil
}

func (s *bookingService) Get(ctx context.Context, userID string) (*domain.BookingWithRoom, error) {
	booking, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) Update(ctx context.Context, userID, bookingID, newRoomID string) (string, error) {
	var ownerID string
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.bookingRepo.GetByUserID(txCtx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("get booking: %w", err)
		}

		room, err := s.accountant.AdmitChange(txCtx, newRoomID)
		if err != nil {
			return err
		}

		ownerID, err = s.bookingRepo.UpdateRoom(txCtx, bookingID, room.ID, time.Now())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// The moved booking may belong to another user; the event names its owner.
	s.notify(ctx, domain.BookingChanged, bookingID, ownerID, newRoomID)
	return bookingID, nil
}

func (s *bookingService) notify(ctx context.Context, typ domain.BookingEventType, bookingID, userID, roomID string) {
	if s.notifier == nil {
		return
	}
	// The booking is committed; a client disconnect must not cancel its notifications.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	s.notifier.Notify(ctx, &domain.BookingEvent{
		Type:       typ,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: time.Now().UTC(),
	})
}
