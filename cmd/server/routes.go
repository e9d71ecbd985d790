package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"transfer-flow.backend/internal/interfaces/http/handlers"
	"transfer-flow.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	sessionHandler *handlers.SessionHandler
	historyHandler *handlers.HistoryHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Session routes (one orchestrator per session)
		session := v1.Group("/session")
		{
			session.POST("", d.sessionHandler.CreateSession)
			session.GET("", d.sessionHandler.GetSession)
			session.DELETE("", d.sessionHandler.DeleteSession)
			session.POST("/connect", d.sessionHandler.Connect)
			session.PATCH("/form", d.sessionHandler.UpdateForm)
			session.POST("/transactions", middleware.IdempotencyMiddleware(), d.sessionHandler.SubmitTransaction)
		}

		// History routes (public read)
		users := v1.Group("/users")
		{
			users.GET("/:address", d.historyHandler.GetUser)
			users.GET("/:address/transactions", d.historyHandler.GetHistory)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-Session-ID, Idempotency-Key")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "transfer-flow-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
