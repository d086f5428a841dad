package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

const healthCheckTimeout = 2 * time.Second

// routeRegistrar is implemented by every domain handler
type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// healthChecker reports whether the database is usable
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func SetupRouter(c *container.Container) http.Handler {
	return newRouter(
		c.Config.HTTP.AllowedOrigins,
		c.Config.App.Version,
		c.DB,
		c.AuthorHandler,
		c.BookHandler,
	)
}

func newRouter(allowedOrigins []string, version string, db healthChecker, handlers ...routeRegistrar) http.Handler {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	router.NoRoute(func(c *gin.Context) {
		response.ErrorWithStatus(c, http.StatusNotFound, "resource not found")
	})
	router.NoMethod(func(c *gin.Context) {
		response.ErrorWithStatus(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(db, version))

		for _, h := range handlers {
			h.RegisterRoutes(v1)
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(router)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(db healthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		dbStatus := "ok"
		if err := db.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}
		health["services"] = gin.H{"database": dbStatus}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
