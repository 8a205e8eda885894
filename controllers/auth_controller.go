package controllers

import (
	"net/http"
	"time"

	"bukarum/middleware"
	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthController struct {
	Auth         *services.AuthService
	Searches     services.PendingSearchStore
	SessionTTL   time.Duration
	CookieSecure bool
}

func NewAuthController(auth *services.AuthService, searches services.PendingSearchStore, ttl time.Duration, cookieSecure bool) *AuthController {
	return &AuthController{Auth: auth, Searches: searches, SessionTTL: ttl, CookieSecure: cookieSecure}
}

// LoginStatus tells the client whether it already has a session.
func (ac *AuthController) LoginStatus(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"authenticated": true,
			"user":          user,
			"redirect":      utils.HomePath,
		})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"authenticated": false,
		"fields":        []string{"username", "password"},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalid_payload", "username and password required", "")
		return
	}

	token, user, err := ac.Auth.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ac.SessionTTL.Seconds()), "/", "", ac.CookieSecure, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":    token,
		"user":     user,
		"redirect": utils.HomePath,
	})
}

// Logout drops the session and any pending search.
func (ac *AuthController) Logout(c *gin.Context) {
	if token := pendingSearchToken(c); token != "" {
		_ = ac.Searches.Clear(c.Request.Context(), token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.CookieSecure, true)
	c.SetCookie(SearchCookie, "", -1, "/", "", ac.CookieSecure, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"redirect": utils.HomePath})
}
