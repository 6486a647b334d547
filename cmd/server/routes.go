package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"pfp-registry.backend/internal/interfaces/http/handlers"
	"pfp-registry.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	profileHandler     *handlers.ProfileHandler
	authHandler        *handlers.AuthHandler
	adminHandler       *handlers.AdminHandler
	authMiddleware     gin.HandlerFunc
	adminKeyMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/challenge", d.authHandler.Challenge)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
		}

		// Profile routes (public reads, authenticated write)
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:account", d.profileHandler.GetProfile)
			profiles.GET("/:account/events", d.profileHandler.ListEvents)
			profiles.PUT("/picture", d.authMiddleware, middleware.IdempotencyMiddleware(), d.profileHandler.SetPicture)
		}

		// Admin routes (operator key)
		admin := v1.Group("/admin")
		admin.Use(d.adminKeyMiddleware)
		{
			admin.POST("/ownership-sweep", d.adminHandler.TriggerSweep)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, Idempotency-Key, X-Admin-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, sqlDB *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		dbStatus := "ok"
		if sqlDB == nil || sqlDB.Ping() != nil {
			status = "degraded"
			dbStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"database": dbStatus,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
