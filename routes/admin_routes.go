package routes

import (
	"github.com/egmrc/impact-offers/controllers"
	"github.com/egmrc/impact-offers/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)
		admin.GET("/auth/google/login", controllers.GoogleLogin)
		admin.GET("/auth/google/callback", controllers.GoogleCallback)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// Company management
			admin.GET("/companies", controllers.ListCompanies)
			admin.PUT("/companies/:id", controllers.UpdateCompany)

			// Offer management
			admin.POST("/offers", controllers.CreateOffer)
			admin.GET("/offers", controllers.ListOffers)
			admin.GET("/offers/:id", controllers.GetOffer)
			admin.PUT("/offers/:id", controllers.UpdateOffer)
			admin.DELETE("/offers/:id", controllers.DeleteOffer)

			// Redemption records
			admin.GET("/redemptions", controllers.ListRedemptions)

			// Reports
			admin.GET("/reports/redemptions", controllers.DownloadRedemptionReport)

			// Superadmin-only management
			super := admin.Group("")
			super.Use(middleware.SuperAdminMiddleware())
			{
				super.POST("/companies", controllers.CreateCompany)
				super.DELETE("/companies/:id", controllers.DeleteCompany)
				super.DELETE("/redemptions/:id", controllers.DeleteRedemption)
				super.GET("/emails", controllers.ListEmailRegistrations)
				super.POST("/users", controllers.CreateAdminUser)
				super.GET("/users", controllers.ListAdminUsers)
				super.PUT("/users/:id/companies", controllers.AssignAdminCompanies)
			}
		}
	}
}
