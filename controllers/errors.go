package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"bukarum/middleware"
	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target   error
	status   int
	code     string
	message  string
	redirect string
}

var errorTable = []errorMapping{
	{services.ErrDateFormat, http.StatusBadRequest, "error.date_format", "invalid date format, expected DD-MM-YYYY", ""},
	{services.ErrInvalidDateRange, http.StatusBadRequest, "error.date_range", "check-out must be after check-in", ""},
	{services.ErrNoAvailability, http.StatusConflict, "error.no_availability", "sorry, no rooms are available for the selected dates", ""},
	{services.ErrInvalidCardProfile, http.StatusBadRequest, "error.invalid_card_profile", "the selected card type is not valid", ""},
	{services.ErrNotAuthenticated, http.StatusUnauthorized, "error.not_authenticated", "login required", utils.LoginPath},
	{services.ErrNotFoundOrForbidden, http.StatusNotFound, "error.not_found", "reservation not found", utils.HomePath},
	{services.ErrSearchExpired, http.StatusGone, "error.search_expired", "your search has expired, please search again", utils.HomePath},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "error.invalid_credentials", "wrong username or password", ""},
	{services.ErrAccountDisabled, http.StatusForbidden, "error.account_disabled", "account disabled", ""},
	{services.ErrNotFound, http.StatusNotFound, "error.not_found", "record not found", ""},
	{services.ErrConflict, http.StatusConflict, "error.conflict", "record already exists", ""},
}

// respondServiceError turns a service error into the JSON error envelope.
// Unknown errors are logged and reported as 500 without details.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "error.validation",
				"message": "invalid input",
				"fields":  verr.Fields,
			},
		})
		return
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			utils.JSONError(c, m.status, m.code, m.message, m.redirect)
			return
		}
	}
	log.Printf("[%s] error: %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
	utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error", "")
}

func respondBadPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalid_payload", "invalid payload: "+err.Error(), "")
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func utoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
