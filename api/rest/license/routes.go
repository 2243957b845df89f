package license

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, verifier Verifier, store sessions.Store, checkoutURL string) {
	group := router.Group("/license")
	{
		group.POST("/verify", VerifyHandler(verifier, store, checkoutURL))
		group.GET("/status", StatusHandler(store, checkoutURL))
	}
}
