package controllers

import (
	"net/http"

	"bukarum/middleware"
	"bukarum/models"
	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

const noReservationsMessage = "You have no reservations registered yet..."

type bookPayload struct {
	CardProfileID uint   `json:"cardProfileId" form:"cardProfileId" binding:"required"`
	CardNumber    int64  `json:"cardNumber" form:"cardNumber" binding:"required"`
	ExpiryMonth   int    `json:"expiryMonth" form:"expiryMonth" binding:"required,min=1,max=12"`
	ExpiryYear    int    `json:"expiryYear" form:"expiryYear" binding:"required"`
	Notes         string `json:"notes" form:"notes"`
}

type reservationView struct {
	ID           uint               `json:"id"`
	Locator      string             `json:"locator"`
	Room         string             `json:"room"`
	RoomType     string             `json:"roomType"`
	CheckIn      string             `json:"checkIn"`
	CheckOut     string             `json:"checkOut"`
	Nights       int                `json:"nights"`
	NightsLabel  string             `json:"nightsLabel"`
	NightlyPrice string             `json:"nightlyPrice"`
	TotalPrice   string             `json:"totalPrice"`
	BookedOn     string             `json:"bookedOn"`
	CardProfile  models.CardProfile `json:"cardProfile"`
	CardNumber   string             `json:"cardNumber"`
	ExpiryMonth  int                `json:"expiryMonth"`
	ExpiryYear   int                `json:"expiryYear"`
	Notes        string             `json:"notes,omitempty"`
	PDFURL       string             `json:"pdfUrl"`
}

func toReservationView(r *models.Reservation) reservationView {
	nights := r.Nights()
	return reservationView{
		ID:           r.ID,
		Locator:      r.Locator,
		Room:         r.Room.Label(),
		RoomType:     r.Room.RoomType.Name,
		CheckIn:      utils.FormatDate(r.CheckInDate()),
		CheckOut:     utils.FormatDate(r.CheckOutDate()),
		Nights:       nights,
		NightsLabel:  utils.NightsLabel(nights),
		NightlyPrice: utils.FormatMoney(r.NightlyPrice),
		TotalPrice:   utils.FormatMoney(r.TotalPrice()),
		BookedOn:     utils.FormatDate(r.BookedOnDate()),
		CardProfile:  r.CardProfile,
		CardNumber:   services.MaskCardNumber(r.CardNumber),
		ExpiryMonth:  r.ExpiryMonth,
		ExpiryYear:   r.ExpiryYear,
		Notes:        r.Notes,
		PDFURL:       "/api/reservations/" + utoa(r.ID) + "/pdf",
	}
}

type ReservationController struct {
	Reservations *services.ReservationService
	Searches     services.PendingSearchStore
	Export       *services.ExportService
}

func NewReservationController(reservations *services.ReservationService, searches services.PendingSearchStore, export *services.ExportService) *ReservationController {
	return &ReservationController{Reservations: reservations, Searches: searches, Export: export}
}

// currentUser is only called behind RequireLogin.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondServiceError(c, services.ErrNotAuthenticated)
		return nil, false
	}
	return user, true
}

func (rc *ReservationController) loadSearch(c *gin.Context) (services.PendingSearch, bool) {
	search, err := rc.Searches.Load(c.Request.Context(), pendingSearchToken(c))
	if err != nil {
		respondServiceError(c, err)
		return services.PendingSearch{}, false
	}
	return search, true
}

// List returns the reservations of the logged-in user.
func (rc *ReservationController) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := rc.Reservations.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]reservationView, 0, len(list))
	for i := range list {
		views = append(views, toReservationView(&list[i]))
	}
	body := gin.H{"reservations": views}
	if len(views) == 0 {
		body["message"] = noReservationsMessage
	}
	utils.JSONSuccess(c, http.StatusOK, body)
}

// BookingForm quotes the room that would be assigned for the pending search.
func (rc *ReservationController) BookingForm(c *gin.Context) {
	typeID, ok := parseIDParam(c, "typeId")
	if !ok {
		respondServiceError(c, services.ErrNoAvailability)
		return
	}
	search, ok := rc.loadSearch(c)
	if !ok {
		return
	}
	quote, err := rc.Reservations.Quote(c.Request.Context(), typeID, search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

// Book creates the reservation for the pending search.
func (rc *ReservationController) Book(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	typeID, ok := parseIDParam(c, "typeId")
	if !ok {
		respondServiceError(c, services.ErrNoAvailability)
		return
	}
	search, ok := rc.loadSearch(c)
	if !ok {
		return
	}

	var payload bookPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	res, err := rc.Reservations.CreateReservation(c.Request.Context(), services.CreateReservationRequest{
		UserID:        user.ID,
		RoomTypeID:    typeID,
		CheckIn:       search.CheckIn,
		CheckOut:      search.CheckOut,
		CardProfileID: payload.CardProfileID,
		CardNumber:    payload.CardNumber,
		ExpiryMonth:   payload.ExpiryMonth,
		ExpiryYear:    payload.ExpiryYear,
		Notes:         payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"data":     toReservationView(res),
		"redirect": utils.ReservationsPath,
	})
}

func (rc *ReservationController) Detail(c *gin.Context) {
	res, ok := rc.ownReservation(c)
	if !ok {
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toReservationView(res))
}

// PDF streams a printable transcript of the reservation.
func (rc *ReservationController) PDF(c *gin.Context) {
	res, ok := rc.ownReservation(c)
	if !ok {
		return
	}
	doc, err := rc.Export.RenderReservationPDF(res)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+services.PDFFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (rc *ReservationController) ownReservation(c *gin.Context) (*models.Reservation, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondServiceError(c, services.ErrNotFoundOrForbidden)
		return nil, false
	}
	res, err := rc.Reservations.GetForUser(c.Request.Context(), id, user.ID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return res, true
}
