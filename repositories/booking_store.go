package repositories

import (
	"context"
	"time"

	"bukarum/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore is everything the search and reservation workflow need from
// storage.
type BookingStore interface {
	// AvailableRooms returns rooms with no reservation overlapping
	// [checkIn, checkOut] as a closed interval, ordered by room number.
	// A nil roomTypeID means every type.
	AvailableRooms(ctx context.Context, roomTypeID *uint, checkIn, checkOut time.Time) ([]models.Room, error)
	// LockRoomType holds the rooms of a type until the surrounding
	// transaction ends.
	LockRoomType(ctx context.Context, roomTypeID uint) error

	ListCardProfiles(ctx context.Context) ([]models.CardProfile, error)
	GetCardProfile(ctx context.Context, id uint) (*models.CardProfile, error)

	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id, userID uint) (*models.Reservation, error)
	ListReservations(ctx context.Context, userID uint) ([]models.Reservation, error)

	Transaction(ctx context.Context, fn func(tx BookingStore) error) error
}

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

var _ BookingStore = (*BookingRepository)(nil)

func (r *BookingRepository) AvailableRooms(ctx context.Context, roomTypeID *uint, checkIn, checkOut time.Time) ([]models.Room, error) {
	db := r.DB.WithContext(ctx)

	overlapping := db.Session(&gorm.Session{NewDB: true}).
		Table("reservations").
		Select("1").
		Where("reservations.room_id = rooms.id").
		Where("reservations.check_in <= ? AND reservations.check_out >= ?",
			datatypes.Date(checkOut), datatypes.Date(checkIn))

	q := db.Model(&models.Room{}).
		Preload("RoomType").
		Where("NOT EXISTS (?)", overlapping)
	if roomTypeID != nil {
		q = q.Where("rooms.room_type_id = ?", *roomTypeID)
	}

	var rooms []models.Room
	if err := q.Order("rooms.number ASC, rooms.id ASC").Find(&rooms).Error; err != nil {
		return nil, translateError(err)
	}
	return rooms, nil
}

func (r *BookingRepository) LockRoomType(ctx context.Context, roomTypeID uint) error {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&models.Room{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_type_id = ?", roomTypeID).
		Pluck("id", &ids).Error
	return translateError(err)
}

func (r *BookingRepository) ListCardProfiles(ctx context.Context) ([]models.CardProfile, error) {
	var cards []models.CardProfile
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&cards).Error; err != nil {
		return nil, translateError(err)
	}
	return cards, nil
}

func (r *BookingRepository) GetCardProfile(ctx context.Context, id uint) (*models.CardProfile, error) {
	var card models.CardProfile
	if err := r.DB.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

func (r *BookingRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	return translateError(err)
}

// GetReservation only finds reservations owned by userID.
func (r *BookingRepository) GetReservation(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var res models.Reservation
	err := r.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("CardProfile").
		Where("id = ? AND user_id = ?", id, userID).
		First(&res).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &res, nil
}

func (r *BookingRepository) ListReservations(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("CardProfile").
		Where("user_id = ?", userID).
		Order("check_in DESC, check_out DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (r *BookingRepository) Transaction(ctx context.Context, fn func(tx BookingStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingRepository{DB: tx})
	})
}
