package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"bukarum/models"
	"bukarum/repositories"
	"bukarum/utils"

	"gorm.io/datatypes"
)

const (
	MaxNotesLength     = 500
	maxLocatorAttempts = 5
	ExpiryYearChoices  = 5
)

// CreateReservationRequest is the already-parsed input of the workflow. The
// dates come from a pending search, everything else from the booking form.
type CreateReservationRequest struct {
	UserID        uint
	RoomTypeID    uint
	CheckIn       time.Time
	CheckOut      time.Time
	CardProfileID uint
	CardNumber    int64
	ExpiryMonth   int
	ExpiryYear    int
	Notes         string
}

// BookingQuote is what the booking form needs before the user commits.
type BookingQuote struct {
	Room         models.Room          `json:"room"`
	RoomLabel    string               `json:"roomLabel"`
	CheckIn      string               `json:"checkIn"`
	CheckOut     string               `json:"checkOut"`
	Nights       int                  `json:"nights"`
	NightsLabel  string               `json:"nightsLabel"`
	NightlyPrice float64              `json:"nightlyPrice"`
	TotalPrice   float64              `json:"totalPrice"`
	CardProfiles []models.CardProfile `json:"cardProfiles"`
	ExpiryMonths []int                `json:"expiryMonths"`
	ExpiryYears  []int                `json:"expiryYears"`
}

type ReservationService struct {
	Store repositories.BookingStore

	// Now and NewLocator are replaceable in tests.
	Now        func() time.Time
	NewLocator func() (string, error)
}

func NewReservationService(store repositories.BookingStore) *ReservationService {
	return &ReservationService{
		Store:      store,
		Now:        time.Now,
		NewLocator: utils.GenerateLocator,
	}
}

func (s *ReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ReservationService) locator() (string, error) {
	if s.NewLocator != nil {
		return s.NewLocator()
	}
	return utils.GenerateLocator()
}

// CreateReservation assigns a free room of the requested type and persists the
// reservation. The rooms of the type stay locked for the whole transaction so
// two concurrent requests cannot pick the same room.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error) {
	if utils.Nights(req.CheckIn, req.CheckOut) <= 0 {
		return nil, ErrInvalidDateRange
	}

	var created *models.Reservation
	err := s.Store.Transaction(ctx, func(tx repositories.BookingStore) error {
		if err := tx.LockRoomType(ctx, req.RoomTypeID); err != nil {
			return fmt.Errorf("lock room type: %w", err)
		}

		room, err := findAvailableRoom(ctx, tx, req.RoomTypeID, req.CheckIn, req.CheckOut)
		if err != nil {
			return fmt.Errorf("find available room: %w", err)
		}
		if room == nil {
			return ErrNoAvailability
		}

		card, err := tx.GetCardProfile(ctx, req.CardProfileID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInvalidCardProfile
			}
			return fmt.Errorf("load card profile: %w", err)
		}

		res := &models.Reservation{
			UserID:        req.UserID,
			CheckIn:       datatypes.Date(utils.DateOnly(req.CheckIn)),
			CheckOut:      datatypes.Date(utils.DateOnly(req.CheckOut)),
			CardProfileID: card.ID,
			CardNumber:    req.CardNumber,
			ExpiryMonth:   req.ExpiryMonth,
			ExpiryYear:    req.ExpiryYear,
			Notes:         truncateNotes(req.Notes),
			RoomID:        room.ID,
			BookedOn:      datatypes.Date(utils.DateOnly(s.now())),
			NightlyPrice:  room.RoomType.NightlyPrice,
		}

		for attempt := 1; ; attempt++ {
			code, gErr := s.locator()
			if gErr != nil {
				return fmt.Errorf("generate locator: %w", gErr)
			}
			res.Locator = code
			cErr := tx.CreateReservation(ctx, res)
			if cErr == nil {
				break
			}
			if errors.Is(cErr, repositories.ErrDuplicate) && attempt < maxLocatorAttempts {
				log.Printf("info: locator collision on attempt %d, retrying", attempt)
				continue
			}
			return fmt.Errorf("create reservation: %w", cErr)
		}

		res.Room = *room
		res.CardProfile = *card
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("reservation %s created: room=%d user=%d %s..%s",
		created.Locator, created.RoomID, created.UserID,
		utils.FormatDate(req.CheckIn), utils.FormatDate(req.CheckOut))
	return created, nil
}

// Quote prepares the booking form for roomTypeID over the searched dates.
func (s *ReservationService) Quote(ctx context.Context, roomTypeID uint, search PendingSearch) (*BookingQuote, error) {
	room, err := findAvailableRoom(ctx, s.Store, roomTypeID, search.CheckIn, search.CheckOut)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNoAvailability
	}
	cards, err := s.Store.ListCardProfiles(ctx)
	if err != nil {
		return nil, err
	}

	nights := utils.Nights(search.CheckIn, search.CheckOut)
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	year := s.now().Year()
	years := make([]int, ExpiryYearChoices)
	for i := range years {
		years[i] = year + i
	}

	return &BookingQuote{
		Room:         *room,
		RoomLabel:    room.Label(),
		CheckIn:      utils.FormatDate(search.CheckIn),
		CheckOut:     utils.FormatDate(search.CheckOut),
		Nights:       nights,
		NightsLabel:  utils.NightsLabel(nights),
		NightlyPrice: room.RoomType.NightlyPrice,
		TotalPrice:   room.RoomType.NightlyPrice * float64(nights),
		CardProfiles: cards,
		ExpiryMonths: months,
		ExpiryYears:  years,
	}, nil
}

// GetForUser never tells a user whether someone else's reservation exists.
func (s *ReservationService) GetForUser(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	res, err := s.Store.GetReservation(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.Store.ListReservations(ctx, userID)
}

func truncateNotes(notes string) string {
	if utf8.RuneCountInString(notes) <= MaxNotesLength {
		return notes
	}
	return string([]rune(notes)[:MaxNotesLength])
}
