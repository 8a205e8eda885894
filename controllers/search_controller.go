package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

const (
	SearchCookie = "bukarum_search"
	SearchHeader = "X-Search-Token"
)

type searchPayload struct {
	CheckIn  string `json:"checkIn" form:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" form:"checkOut" binding:"required"`
}

type roomTypeOption struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	NightlyPrice float64 `json:"nightlyPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	BookURL      string  `json:"bookUrl"`
}

type SearchController struct {
	Availability *services.AvailabilityService
	Searches     services.PendingSearchStore
	SearchTTL    time.Duration
	CookieSecure bool
}

func NewSearchController(availability *services.AvailabilityService, searches services.PendingSearchStore, ttl time.Duration, cookieSecure bool) *SearchController {
	return &SearchController{Availability: availability, Searches: searches, SearchTTL: ttl, CookieSecure: cookieSecure}
}

// pendingSearchToken reads the search token from its cookie or header.
func pendingSearchToken(c *gin.Context) string {
	if v, err := c.Cookie(SearchCookie); err == nil && v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader(SearchHeader))
}

func (sc *SearchController) Home(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"title":      "Buk-A-Rum",
		"header":     "Welcome",
		"dateFormat": "DD-MM-YYYY",
		"search": gin.H{
			"method": http.MethodPost,
			"action": "/api/search",
			"fields": []string{"checkIn", "checkOut"},
		},
	})
}

// Search lists the room types with at least one free room for the dates and
// hands back a token remembering them for the booking step.
func (sc *SearchController) Search(c *gin.Context) {
	ctx := c.Request.Context()

	if old := pendingSearchToken(c); old != "" {
		_ = sc.Searches.Clear(ctx, old)
		c.SetCookie(SearchCookie, "", -1, "/", "", sc.CookieSecure, true)
	}

	var payload searchPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondServiceError(c, services.ErrDateFormat)
		return
	}

	search, err := services.NewPendingSearch(payload.CheckIn, payload.CheckOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	types, err := sc.Availability.AvailableRoomTypes(ctx, search.CheckIn, search.CheckOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := sc.Searches.Save(ctx, search)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.SetCookie(SearchCookie, token, int(sc.SearchTTL.Seconds()), "/", "", sc.CookieSecure, true)

	nights := search.Nights()
	options := make([]roomTypeOption, 0, len(types))
	for _, rt := range types {
		options = append(options, roomTypeOption{
			ID:           rt.ID,
			Name:         rt.Name,
			Capacity:     rt.Capacity,
			NightlyPrice: rt.NightlyPrice,
			TotalPrice:   rt.NightlyPrice * float64(nights),
			BookURL:      fmt.Sprintf("/api/book/%d", rt.ID),
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"checkIn":     utils.FormatDate(search.CheckIn),
		"checkOut":    utils.FormatDate(search.CheckOut),
		"nights":      nights,
		"nightsLabel": utils.NightsLabel(nights),
		"roomTypes":   options,
		"searchToken": token,
		"expiresIn":   int(sc.SearchTTL.Seconds()),
	})
}

// SearchRedirect answers a bare GET on the search endpoint by sending the
// client back to the search form.
func (sc *SearchController) SearchRedirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, utils.HomePath)
}
