package services

import (
	"context"
	"errors"
	"strings"

	"bukarum/models"
	"bukarum/repositories"

	"github.com/jinzhu/copier"
)

// CatalogStore is the administrative storage surface.
type CatalogStore interface {
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	GetRoomType(ctx context.Context, id uint) (*models.RoomType, error)
	SaveRoomType(ctx context.Context, rt *models.RoomType) error
	DeleteRoomType(ctx context.Context, id uint) error

	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	SaveRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id uint) error

	ListCardProfiles(ctx context.Context) ([]models.CardProfile, error)
	GetCardProfile(ctx context.Context, id uint) (*models.CardProfile, error)
	SaveCardProfile(ctx context.Context, card *models.CardProfile) error
	DeleteCardProfile(ctx context.Context, id uint) error

	ListReservations(ctx context.Context) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id uint) error
}

// AccountStore is the administrative surface over user accounts.
type AccountStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error
}

// ---------------------------
// Input DTOs
// ---------------------------

type RoomTypeInput struct {
	Name         string  `json:"name" validate:"required,max=50"`
	Capacity     int     `json:"capacity" validate:"required,min=1"`
	NightlyPrice float64 `json:"nightlyPrice" validate:"gte=0"`
}

type RoomInput struct {
	Number     int  `json:"number" validate:"gte=0"`
	RoomTypeID uint `json:"roomTypeId" validate:"required"`
}

type CardProfileInput struct {
	Name string `json:"name" validate:"required,max=50"`
}

type UserInput struct {
	Username string `json:"username" validate:"required,max=150"`
	FullName string `json:"fullName" validate:"max=255"`
	Password string `json:"password" validate:"required,min=6"`
	IsStaff  bool   `json:"isStaff"`
}

// CatalogService implements the staff back office.
type CatalogService struct {
	Store    CatalogStore
	Accounts AccountStore
}

func NewCatalogService(store CatalogStore, accounts AccountStore) *CatalogService {
	return &CatalogService{Store: store, Accounts: accounts}
}

// mapStoreError turns repository sentinels into service errors.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, repositories.ErrForeignKey):
		return &ValidationError{Fields: map[string]string{"reference": "points to a missing record"}}
	default:
		return err
	}
}

// ---------------- RoomTypes ----------------

func (s *CatalogService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	list, err := s.Store.ListRoomTypes(ctx)
	return list, mapStoreError(err)
}

func (s *CatalogService) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	rt, err := s.Store.GetRoomType(ctx, id)
	return rt, mapStoreError(err)
}

// SaveRoomType creates the type when id is 0, otherwise updates it.
func (s *CatalogService) SaveRoomType(ctx context.Context, id uint, in RoomTypeInput) (*models.RoomType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	rt := &models.RoomType{}
	if id != 0 {
		existing, err := s.Store.GetRoomType(ctx, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		rt = existing
	}
	if err := copier.Copy(rt, &in); err != nil {
		return nil, err
	}
	if err := s.Store.SaveRoomType(ctx, rt); err != nil {
		return nil, mapStoreError(err)
	}
	return rt, nil
}

func (s *CatalogService) DeleteRoomType(ctx context.Context, id uint) error {
	return mapStoreError(s.Store.DeleteRoomType(ctx, id))
}

// ---------------- Rooms ----------------

func (s *CatalogService) ListRooms(ctx context.Context) ([]models.Room, error) {
	list, err := s.Store.ListRooms(ctx)
	return list, mapStoreError(err)
}

func (s *CatalogService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.Store.GetRoom(ctx, id)
	return room, mapStoreError(err)
}

func (s *CatalogService) SaveRoom(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	rt, err := s.Store.GetRoomType(ctx, in.RoomTypeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fieldError("roomTypeId", "does not exist")
		}
		return nil, err
	}

	room := &models.Room{}
	if id != 0 {
		existing, err := s.Store.GetRoom(ctx, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		room = existing
	}
	if err := copier.Copy(room, &in); err != nil {
		return nil, err
	}
	if err := s.Store.SaveRoom(ctx, room); err != nil {
		return nil, mapStoreError(err)
	}
	room.RoomType = *rt
	return room, nil
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id uint) error {
	return mapStoreError(s.Store.DeleteRoom(ctx, id))
}

// ---------------- CardProfiles ----------------

func (s *CatalogService) ListCardProfiles(ctx context.Context) ([]models.CardProfile, error) {
	list, err := s.Store.ListCardProfiles(ctx)
	return list, mapStoreError(err)
}

func (s *CatalogService) GetCardProfile(ctx context.Context, id uint) (*models.CardProfile, error) {
	card, err := s.Store.GetCardProfile(ctx, id)
	return card, mapStoreError(err)
}

func (s *CatalogService) SaveCardProfile(ctx context.Context, id uint, in CardProfileInput) (*models.CardProfile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	card := &models.CardProfile{}
	if id != 0 {
		existing, err := s.Store.GetCardProfile(ctx, id)
		if err != nil {
			return nil, mapStoreError(err)
		}
		card = existing
	}
	if err := copier.Copy(card, &in); err != nil {
		return nil, err
	}
	if err := s.Store.SaveCardProfile(ctx, card); err != nil {
		return nil, mapStoreError(err)
	}
	return card, nil
}

func (s *CatalogService) DeleteCardProfile(ctx context.Context, id uint) error {
	return mapStoreError(s.Store.DeleteCardProfile(ctx, id))
}

// ---------------- Reservations ----------------

func (s *CatalogService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	list, err := s.Store.ListReservations(ctx)
	return list, mapStoreError(err)
}

func (s *CatalogService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	res, err := s.Store.GetReservation(ctx, id)
	return res, mapStoreError(err)
}

func (s *CatalogService) DeleteReservation(ctx context.Context, id uint) error {
	return mapStoreError(s.Store.DeleteReservation(ctx, id))
}

// ---------------- Users ----------------

func (s *CatalogService) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.Accounts.List(ctx)
	return list, mapStoreError(err)
}

func (s *CatalogService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{IsActive: true}
	if err := copier.Copy(user, &in); err != nil {
		return nil, err
	}
	user.Password = hash
	if err := s.Accounts.Create(ctx, user); err != nil {
		return nil, mapStoreError(err)
	}
	return user, nil
}

// DeleteUser removes the account together with its reservations.
func (s *CatalogService) DeleteUser(ctx context.Context, id uint) error {
	return mapStoreError(s.Accounts.Delete(ctx, id))
}
