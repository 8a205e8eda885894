package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bukarum/controllers"
	"bukarum/middleware"
	"bukarum/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers to their routes.
func SetupRouter(
	auth *services.AuthService,
	sc *controllers.SearchController,
	rc *controllers.ReservationController,
	ac *controllers.AuthController,
	adm *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader, controllers.SearchHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Authenticate(auth), middleware.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/", sc.Home)
		api.GET("/search", sc.SearchRedirect)
		api.POST("/search", sc.Search)

		api.GET("/login", ac.LoginStatus)
		api.POST("/login", ac.Login)
		api.GET("/logout", ac.Logout)
		api.POST("/logout", ac.Logout)

		member := api.Group("", middleware.RequireLogin())
		{
			member.GET("/reservations", rc.List)
			member.GET("/reservations/:id", rc.Detail)
			member.GET("/reservations/:id/pdf", rc.PDF)

			member.GET("/book/:typeId", rc.BookingForm)
			member.POST("/book/:typeId", rc.Book)
		}

		admin := api.Group("/admin", middleware.RequireStaff())
		{
			roomTypes := admin.Group("/room-types")
			{
				roomTypes.GET("", adm.ListRoomTypes)
				roomTypes.POST("", adm.CreateRoomType)
				roomTypes.GET("/:id", adm.GetRoomType)
				roomTypes.PUT("/:id", adm.UpdateRoomType)
				roomTypes.DELETE("/:id", adm.DeleteRoomType)
			}

			rooms := admin.Group("/rooms")
			{
				rooms.GET("", adm.ListRooms)
				rooms.POST("", adm.CreateRoom)
				rooms.GET("/:id", adm.GetRoom)
				rooms.PUT("/:id", adm.UpdateRoom)
				rooms.DELETE("/:id", adm.DeleteRoom)
			}

			cards := admin.Group("/card-profiles")
			{
				cards.GET("", adm.ListCardProfiles)
				cards.POST("", adm.CreateCardProfile)
				cards.GET("/:id", adm.GetCardProfile)
				cards.PUT("/:id", adm.UpdateCardProfile)
				cards.DELETE("/:id", adm.DeleteCardProfile)
			}

			reservations := admin.Group("/reservations")
			{
				reservations.GET("", adm.ListReservations)
				reservations.GET("/:id", adm.GetReservation)
				reservations.DELETE("/:id", adm.DeleteReservation)
			}

			users := admin.Group("/users")
			{
				users.GET("", adm.ListUsers)
				users.POST("", adm.CreateUser)
				users.DELETE("/:id", adm.DeleteUser)
			}
		}
	}

	return r
}
