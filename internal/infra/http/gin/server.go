// Package ginserver exposes the HTTP surface. Handlers only shape DTOs and
// resolve the caller identity from the X-Sharer-User-Id header; all rules
// live in the services.
package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/e1zenberg/java-shareit/internal/infra/config"
	"github.com/e1zenberg/java-shareit/internal/infra/obs"
)

// callerHeader carries the acting user's identity.
const callerHeader = "X-Sharer-User-Id"

type Handlers struct {
	Users    UserHandler
	Items    ItemHandler
	Bookings BookingHandler
	Requests RequestHandler
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", callerHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	users := router.Group("/users")
	users.POST("", h.Users.Create)
	users.PATCH("/:id", h.Users.Update)
	users.GET("/:id", h.Users.Get)
	users.GET("", h.Users.List)
	users.DELETE("/:id", h.Users.Delete)

	items := router.Group("/items")
	items.POST("", h.Items.Create)
	items.PATCH("/:id", h.Items.Update)
	items.GET("/:id", h.Items.Get)
	items.GET("", h.Items.ListByOwner)
	items.GET("/search", h.Items.Search)
	items.POST("/:id/comment", h.Items.AddComment)

	bookings := router.Group("/bookings")
	bookings.POST("", h.Bookings.Create)
	bookings.PATCH("/:id", h.Bookings.Approve)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.GET("", h.Bookings.ListForUser)
	bookings.GET("/owner", h.Bookings.ListForOwner)

	requests := router.Group("/requests")
	requests.POST("", h.Requests.Create)
	requests.GET("", h.Requests.Own)
	requests.GET("/all", h.Requests.Others)
	requests.GET("/:id", h.Requests.Get)

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
