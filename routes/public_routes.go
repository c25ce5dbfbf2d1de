package routes

import (
	"net/http"

	"github.com/egmrc/impact-offers/controllers"
	"github.com/gin-gonic/gin"
)

// initPublicRoutes wires the visitor-facing API: email registration and
// verification, offer browsing, and redemption
func initPublicRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/email/register", controllers.RegisterEmail)
		api.GET("/email/verify", controllers.VerifyEmail)

		api.GET("/offers", controllers.ListActiveOffers)
		// Keyed by code; must be registered before the :slug wildcard
		api.POST("/offers/redeem", controllers.RedeemOfferByCode)
		api.GET("/offers/:slug", controllers.GetOfferBySlug)
		api.POST("/offers/:slug/redeem", controllers.RedeemOfferBySlug)
	}
}
