package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"bukarum/models"
	"bukarum/repositories"
)

// memoryStore is an in-memory BookingStore applying the same closed-interval
// overlap rule as the SQL query.
type memoryStore struct {
	mu           sync.Mutex
	rooms        []models.Room
	cards        []models.CardProfile
	reservations []models.Reservation
	nextID       uint

	createErrs []error
	locks      []uint
}

func newMemoryStore() *memoryStore {
	standard := models.RoomType{ID: 1, Name: "Standard", Capacity: 2, NightlyPrice: 80.50}
	suite := models.RoomType{ID: 2, Name: "Suite", Capacity: 4, NightlyPrice: 250}
	return &memoryStore{
		rooms: []models.Room{
			{ID: 11, Number: 2, RoomTypeID: 1, RoomType: standard},
			{ID: 10, Number: 1, RoomTypeID: 1, RoomType: standard},
			{ID: 20, Number: 10, RoomTypeID: 2, RoomType: suite},
		},
		cards: []models.CardProfile{
			{ID: 1, Name: "Visa"},
			{ID: 2, Name: "Mastercard"},
		},
		nextID: 1,
	}
}

func (m *memoryStore) AvailableRooms(_ context.Context, roomTypeID *uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Room, 0)
	for _, room := range m.rooms {
		if roomTypeID != nil && room.RoomTypeID != *roomTypeID {
			continue
		}
		busy := false
		for _, r := range m.reservations {
			if r.RoomID == room.ID && r.Overlaps(checkIn, checkOut) {
				busy = true
				break
			}
		}
		if !busy {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryStore) LockRoomType(_ context.Context, roomTypeID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks = append(m.locks, roomTypeID)
	return nil
}

func (m *memoryStore) ListCardProfiles(context.Context) ([]models.CardProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CardProfile(nil), m.cards...), nil
}

func (m *memoryStore) GetCardProfile(_ context.Context, id uint) (*models.CardProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.ID == id {
			card := c
			return &card, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryStore) CreateReservation(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range m.reservations {
		if existing.Locator == r.Locator {
			return repositories.ErrDuplicate
		}
	}
	r.ID = m.nextID
	m.nextID++
	m.reservations = append(m.reservations, *r)
	return nil
}

func (m *memoryStore) GetReservation(_ context.Context, id, userID uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id && r.UserID == userID {
			res := r
			return &res, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryStore) ListReservations(_ context.Context, userID uint) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Reservation, 0)
	for _, r := range m.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckInDate().After(out[j].CheckInDate())
	})
	return out, nil
}

func (m *memoryStore) Transaction(_ context.Context, fn func(tx repositories.BookingStore) error) error {
	snapshot := append([]models.Reservation(nil), m.reservations...)
	if err := fn(m); err != nil {
		m.mu.Lock()
		m.reservations = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
