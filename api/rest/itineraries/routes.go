package itineraries

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/internal/sessions"
)

// registers itinerary routes. limiter guards generation, which calls the
// paid text generation service.
func RegisterRoutes(router *gin.RouterGroup, p Planner, store sessions.Store, limiter gin.HandlerFunc, checkoutURL string) {
	group := router.Group("/itineraries")
	{
		group.POST("", limiter, GenerateHandler(p, store, checkoutURL))
		group.GET("/current", CurrentHandler(store, checkoutURL))
	}
}
