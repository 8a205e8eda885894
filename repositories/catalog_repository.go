package repositories

import (
	"context"

	"bukarum/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository backs the administrative screens: room types, rooms, card
// profiles and the full reservation book.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ---------------- RoomTypes ----------------

func (r *CatalogRepository) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, translateError(err)
	}
	return types, nil
}

func (r *CatalogRepository) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &rt, nil
}

func (r *CatalogRepository) SaveRoomType(ctx context.Context, rt *models.RoomType) error {
	return translateError(r.DB.WithContext(ctx).Save(rt).Error)
}

// DeleteRoomType removes the type together with its rooms and their
// reservations.
func (r *CatalogRepository) DeleteRoomType(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomIDs := tx.Model(&models.Room{}).Select("id").Where("room_type_id = ?", id)
		if err := tx.Where("room_id IN (?)", roomIDs).Delete(&models.Reservation{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("room_type_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&models.RoomType{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ---------------- Rooms ----------------

func (r *CatalogRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.DB.WithContext(ctx).Preload("RoomType").Order("number ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, translateError(err)
	}
	return rooms, nil
}

func (r *CatalogRepository) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.DB.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}

func (r *CatalogRepository) SaveRoom(ctx context.Context, room *models.Room) error {
	return translateError(r.DB.WithContext(ctx).Omit(clause.Associations).Save(room).Error)
}

func (r *CatalogRepository) DeleteRoom(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&models.Room{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ---------------- CardProfiles ----------------

func (r *CatalogRepository) ListCardProfiles(ctx context.Context) ([]models.CardProfile, error) {
	var cards []models.CardProfile
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cards).Error; err != nil {
		return nil, translateError(err)
	}
	return cards, nil
}

func (r *CatalogRepository) GetCardProfile(ctx context.Context, id uint) (*models.CardProfile, error) {
	var card models.CardProfile
	if err := r.DB.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

func (r *CatalogRepository) SaveCardProfile(ctx context.Context, card *models.CardProfile) error {
	return translateError(r.DB.WithContext(ctx).Save(card).Error)
}

func (r *CatalogRepository) DeleteCardProfile(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_profile_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&models.CardProfile{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ---------------- Reservations ----------------

// ListReservations orders the book the way the front desk reads it: latest
// check-in first, then latest check-out, then room.
func (r *CatalogRepository) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.DB.WithContext(ctx).
		Preload("Room.RoomType").
		Preload("CardProfile").
		Order("check_in DESC, check_out DESC, room_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

func (r *CatalogRepository) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.DB.WithContext(ctx).Preload("Room.RoomType").Preload("CardProfile").First(&res, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &res, nil
}

func (r *CatalogRepository) DeleteReservation(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
