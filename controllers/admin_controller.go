package controllers

import (
	"net/http"

	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

// AdminController exposes the staff back office.
type AdminController struct {
	Catalog *services.CatalogService
}

func NewAdminController(catalog *services.CatalogService) *AdminController {
	return &AdminController{Catalog: catalog}
}

func (ac *AdminController) idParam(c *gin.Context) (uint, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondServiceError(c, services.ErrNotFound)
	}
	return id, ok
}

func respondDeleted(c *gin.Context, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "deleted"})
}

// ---------------- RoomTypes ----------------

func (ac *AdminController) ListRoomTypes(c *gin.Context) {
	list, err := ac.Catalog.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ac *AdminController) GetRoomType(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	rt, err := ac.Catalog.GetRoomType(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ac *AdminController) CreateRoomType(c *gin.Context) {
	ac.saveRoomType(c, 0, http.StatusCreated)
}

func (ac *AdminController) UpdateRoomType(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	ac.saveRoomType(c, id, http.StatusOK)
}

func (ac *AdminController) saveRoomType(c *gin.Context, id uint, status int) {
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadPayload(c, err)
		return
	}
	rt, err := ac.Catalog.SaveRoomType(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, status, rt)
}

func (ac *AdminController) DeleteRoomType(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	respondDeleted(c, ac.Catalog.DeleteRoomType(c.Request.Context(), id))
}

// ---------------- Rooms ----------------

func (ac *AdminController) ListRooms(c *gin.Context) {
	list, err := ac.Catalog.ListRooms(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ac *AdminController) GetRoom(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	room, err := ac.Catalog.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ac *AdminController) CreateRoom(c *gin.Context) {
	ac.saveRoom(c, 0, http.StatusCreated)
}

func (ac *AdminController) UpdateRoom(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	ac.saveRoom(c, id, http.StatusOK)
}

func (ac *AdminController) saveRoom(c *gin.Context, id uint, status int) {
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadPayload(c, err)
		return
	}
	room, err := ac.Catalog.SaveRoom(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, status, room)
}

func (ac *AdminController) DeleteRoom(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	respondDeleted(c, ac.Catalog.DeleteRoom(c.Request.Context(), id))
}

// ---------------- CardProfiles ----------------

func (ac *AdminController) ListCardProfiles(c *gin.Context) {
	list, err := ac.Catalog.ListCardProfiles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ac *AdminController) GetCardProfile(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	card, err := ac.Catalog.GetCardProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, card)
}

func (ac *AdminController) CreateCardProfile(c *gin.Context) {
	ac.saveCardProfile(c, 0, http.StatusCreated)
}

func (ac *AdminController) UpdateCardProfile(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	ac.saveCardProfile(c, id, http.StatusOK)
}

func (ac *AdminController) saveCardProfile(c *gin.Context, id uint, status int) {
	var in services.CardProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadPayload(c, err)
		return
	}
	card, err := ac.Catalog.SaveCardProfile(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, status, card)
}

func (ac *AdminController) DeleteCardProfile(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	respondDeleted(c, ac.Catalog.DeleteCardProfile(c.Request.Context(), id))
}

// ---------------- Reservations ----------------

func (ac *AdminController) ListReservations(c *gin.Context) {
	list, err := ac.Catalog.ListReservations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]reservationView, 0, len(list))
	for i := range list {
		views = append(views, toReservationView(&list[i]))
	}
	utils.JSONSuccess(c, http.StatusOK, views)
}

func (ac *AdminController) GetReservation(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	res, err := ac.Catalog.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toReservationView(res))
}

func (ac *AdminController) DeleteReservation(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	respondDeleted(c, ac.Catalog.DeleteReservation(c.Request.Context(), id))
}

// ---------------- Users ----------------

func (ac *AdminController) ListUsers(c *gin.Context) {
	list, err := ac.Catalog.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ac *AdminController) CreateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadPayload(c, err)
		return
	}
	user, err := ac.Catalog.CreateUser(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := ac.idParam(c)
	if !ok {
		return
	}
	respondDeleted(c, ac.Catalog.DeleteUser(c.Request.Context(), id))
}
