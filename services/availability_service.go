package services

import (
	"context"
	"time"

	"bukarum/models"
	"bukarum/repositories"
)

// AvailabilityService answers "which rooms are free for these dates".
// Availability uses a closed interval: a reservation ending on the day a new
// one starts still conflicts.
type AvailabilityService struct {
	Store repositories.BookingStore
}

func NewAvailabilityService(store repositories.BookingStore) *AvailabilityService {
	return &AvailabilityService{Store: store}
}

// FindAvailableRoom returns the lowest-numbered free room of the type, or
// nil when every room of the type is taken.
func (s *AvailabilityService) FindAvailableRoom(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (*models.Room, error) {
	return findAvailableRoom(ctx, s.Store, roomTypeID, checkIn, checkOut)
}

func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error) {
	return s.Store.AvailableRooms(ctx, nil, checkIn, checkOut)
}

// AvailableRoomTypes lists each type that still has at least one free room,
// in the order its first free room appears.
func (s *AvailabilityService) AvailableRoomTypes(ctx context.Context, checkIn, checkOut time.Time) ([]models.RoomType, error) {
	rooms, err := s.FindAvailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]bool)
	types := make([]models.RoomType, 0)
	for _, room := range rooms {
		if seen[room.RoomTypeID] {
			continue
		}
		seen[room.RoomTypeID] = true
		types = append(types, room.RoomType)
	}
	return types, nil
}

func findAvailableRoom(ctx context.Context, store repositories.BookingStore, roomTypeID uint, checkIn, checkOut time.Time) (*models.Room, error) {
	id := roomTypeID
	rooms, err := store.AvailableRooms(ctx, &id, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	room := rooms[0]
	return &room, nil
}
