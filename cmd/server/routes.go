package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/api/rest/health"
	"codeberg.org/atlasagency/server/api/rest/itineraries"
	"codeberg.org/atlasagency/server/api/rest/license"
	"codeberg.org/atlasagency/server/api/rest/options"
	"codeberg.org/atlasagency/server/internal/logger"
	"codeberg.org/atlasagency/server/internal/sessions"
)

// local frontends allowed when FRONTEND_URL is unset
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.FrontendURL))
	router.GET("/health", health.Handler)

	checkoutURL := server.config.License.CheckoutURL

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
		options.RegisterRoutes(v1, checkoutURL)
	}

	// routes touching per-visitor state carry the session cookie
	stateful := v1.Group("")
	stateful.Use(sessions.Middleware(server.cookies))

	{
		itineraries.RegisterRoutes(stateful, server.services.Planner, server.sessions, server.limiter, checkoutURL)
		license.RegisterRoutes(stateful, server.services.Verifier, server.sessions, checkoutURL)
	}
}

// allows the form frontend to call the API with its session cookie
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	origins := devOrigins
	if frontendURL != "" {
		origins = []string{frontendURL}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
