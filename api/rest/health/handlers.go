package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Handler godoc
// @Summary Health check
// @Description Returns the server health status
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "atlas",
		Version: Version,
	})
}

// PingHandler godoc
// @Summary Ping
// @Description Responds with pong
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /api/v1/ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
