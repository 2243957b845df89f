package options

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, checkoutURL string) {
	router.GET("/options", Handler(checkoutURL))
}
