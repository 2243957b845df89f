package options

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/atlasagency/server/internal/trip"
)

// Handler godoc
// @Summary List form options
// @Description Returns the budgets, languages, interests and logistics choices for the trip form
// @Tags options
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/options [get]
func Handler(checkoutURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			FormOptions: trip.Options(),
			CheckoutURL: checkoutURL,
		})
	}
}
