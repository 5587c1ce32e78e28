// Package server assembles the HTTP API from the feature modules.
package server

import (
	"net/http"

	"fixify/internal/config"
	"fixify/internal/middleware"
	"fixify/internal/modules/admin"
	"fixify/internal/modules/auth"
	"fixify/internal/modules/catalog"
	"fixify/internal/modules/earnings"
	"fixify/internal/modules/notification"
	"fixify/internal/modules/servicerequest"
	jwtsvc "fixify/internal/pkg/jwt"
	"fixify/internal/pkg/response"
	"fixify/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server holds the router and the long-lived pieces main needs to stop.
type Server struct {
	Router *gin.Engine
	Hub    *notification.Hub
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	earningsRepo := repository.NewEarningsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)
	hub := notification.NewHub(middleware.AllowedOrigins(cfg.CORSOrigins)...)

	notificationService := notification.NewService(notificationRepo, hub)
	authService := auth.NewService(userRepo, serviceRepo, tokens, cfg.AdminSignupKey)
	catalogService := catalog.NewService(serviceRepo)
	requestService := servicerequest.NewService(requestRepo, userRepo, serviceRepo, notificationService)
	earningsService := earnings.NewService(earningsRepo)
	adminService := admin.NewService(userRepo, requestRepo, earningsService, notificationService)

	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:     cfg.CookieName,
		Path:     cfg.CookiePath,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSiteMode(),
		TTL:      cfg.SessionTTL,
	})
	catalogHandler := catalog.NewHandler(catalogService)
	requestHandler := servicerequest.NewHandler(requestService)
	earningsHandler := earnings.NewHandler(earningsService)
	adminHandler := admin.NewHandler(adminService)
	notificationHandler := notification.NewHandler(notificationService, hub)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "API is running", nil)
	})
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.Authenticate(tokens, userRepo, cfg.CookieName))
		{
			authHandler.RegisterProtectedRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			earningsHandler.RegisterProviderRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			adminHandler.RegisterRoutes(protected.Group("/admin", middleware.AdminOnly()))
			catalogHandler.RegisterAdminRoutes(protected.Group("", middleware.AdminOnly()))
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return &Server{Router: r, Hub: hub}
}
