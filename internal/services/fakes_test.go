package services

import (
	"context"
	"fmt"
	"time"

	"eventlodging/internal/domain"
)

// memStore is an in-memory backing store shared by the fake repositories below.
type memStore struct {
	enrollments map[string]*domain.Enrollment     // by user ID
	tickets     map[string]*domain.TicketWithType // by enrollment ID
	hotels      map[string]*domain.Hotel
	rooms       map[string]*domain.Room
	bookings    []*domain.Booking
	users       map[string]*domain.User
	seq         int
	err         error
}

func newMemStore() *memStore {
	return &memStore{
		enrollments: make(map[string]*domain.Enrollment),
		tickets:     make(map[string]*domain.TicketWithType),
		hotels:      make(map[string]*domain.Hotel),
		rooms:       make(map[string]*domain.Room),
		users:       make(map[string]*domain.User),
	}
}

// enroll registers userID with a ticket of the given status and kind.
func (m *memStore) enroll(userID string, status domain.TicketStatus, isRemote, includesHotel bool) {
	enrollmentID := "enr-" + userID
	m.enrollments[userID] = &domain.Enrollment{ID: enrollmentID, UserID: userID}
	m.tickets[enrollmentID] = &domain.TicketWithType{
		Ticket: domain.Ticket{ID: "tkt-" + userID, EnrollmentID: enrollmentID, Status: status},
		TicketType: domain.TicketType{
			ID:            "tt-" + userID,
			IsRemote:      isRemote,
			IncludesHotel: includesHotel,
		},
	}
}

func (m *memStore) addRoom(id string, capacity int) *domain.Room {
	room := &domain.Room{ID: id, HotelID: "hotel-1", Name: "Room " + id, Capacity: capacity}
	m.rooms[id] = room
	return room
}

// fill adds n bookings for room by users other than the ones under test.
func (m *memStore) fill(roomID string, n int) {
	for i := 0; i < n; i++ {
		m.seq++
		m.bookings = append(m.bookings, &domain.Booking{
			ID:     fmt.Sprintf("bk-%d", m.seq),
			UserID: fmt.Sprintf("other-%d", m.seq),
			RoomID: roomID,
		})
	}
}

func (m *memStore) countFor(roomID string) int {
	n := 0
	for _, b := range m.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n
}

type fakeEnrollmentRepo struct{ *memStore }

func (f fakeEnrollmentRepo) GetByUserID(ctx context.Context, userID string) (*domain.Enrollment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.enrollments[userID]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

type fakeTicketRepo struct{ *memStore }

func (f fakeTicketRepo) GetByEnrollmentID(ctx context.Context, enrollmentID string) (*domain.TicketWithType, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tickets[enrollmentID]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

type fakeRoomRepo struct{ *memStore }

func (f fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f fakeRoomRepo) CountBookings(ctx context.Context, roomID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.countFor(roomID), nil
}

func (f fakeRoomRepo) ListByHotelID(ctx context.Context, hotelID string) ([]*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	var rooms []*domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			rooms = append(rooms, r)
		}
	}
	return rooms, nil
}

type fakeHotelRepo struct{ *memStore }

func (f fakeHotelRepo) List(ctx context.Context) ([]*domain.Hotel, error) {
	if f.err != nil {
		return nil, f.err
	}
	var hotels []*domain.Hotel
	for _, h := range f.hotels {
		hotels = append(hotels, h)
	}
	return hotels, nil
}

func (f fakeHotelRepo) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	if f.err != nil {
		return nil, f.err
	}
	if h, ok := f.hotels[id]; ok {
		return h, nil
	}
	return nil, domain.ErrNotFound
}

type fakeBookingRepo struct{ *memStore }

func (f fakeBookingRepo) GetByUserID(ctx context.Context, userID string) (*domain.BookingWithRoom, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.bookings {
		if b.UserID == userID {
			return &domain.BookingWithRoom{Booking: *b, Room: f.rooms[b.RoomID]}, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (f fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.seq++
	b.ID = fmt.Sprintf("bk-%d", f.seq)
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f fakeBookingRepo) UpdateRoom(ctx context.Context, bookingID, roomID string, updatedAt time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, b := range f.bookings {
		if b.ID == bookingID {
			b.RoomID = roomID
			b.UpdatedAt = updatedAt
			return b.UserID, nil
		}
	}
	return "", domain.ErrBookingNotFound
}

type fakeUserRepo struct{ *memStore }

func (f fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeTransactor runs fn directly and counts calls.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeNotifier records every event it is told about.
type fakeNotifier struct {
	events  []*domain.BookingEvent
	ctxErrs []error
	bounded []bool
}

func (f *fakeNotifier) Notify(ctx context.Context, event *domain.BookingEvent) {
	f.events = append(f.events, event)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	_, ok := ctx.Deadline()
	f.bounded = append(f.bounded, ok)
}

func newTestBookingService(store *memStore, notifier domain.BookingNotifier) (domain.BookingService, *fakeTransactor) {
	tx := &fakeTransactor{}
	gate := NewEligibilityGate(fakeEnrollmentRepo{store}, fakeTicketRepo{store})
	accountant := NewCapacityAccountant(fakeRoomRepo{store})
	return NewBookingService(gate, accountant, fakeBookingRepo{store}, tx, notifier), tx
}
