package routes

import (
	"bookmycuts-backend/config"
	"bookmycuts-backend/controllers"
	"bookmycuts-backend/models"
	"bookmycuts-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers are the controllers that need services wired in by main.
type Handlers struct {
	Shops    *controllers.ShopController
	Carts    *controllers.CartController
	Bookings *controllers.BookingController
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(utils.ErrorHandler())
	r.Use(config.PerformanceLogger())
	r.Use(utils.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		shops := api.Group("/shops")
		{
			shops.GET("", controllers.ViewAllShops)
			shops.GET("/:id", h.Shops.GetShop)
			shops.GET("/:id/catalog", h.Shops.GetCatalog)
			shops.GET("/:id/slots", h.Shops.GetSlots)
		}

		carts := api.Group("/carts")
		{
			carts.POST("", h.Carts.CreateCart)
			carts.GET("/:id", h.Carts.GetCart)
			carts.PUT("/:id/barber", h.Carts.PickBarber)
			carts.POST("/:id/services/:serviceId/toggle", h.Carts.ToggleService)
			carts.PUT("/:id/date", h.Carts.PickDate)
			carts.PUT("/:id/slot", h.Carts.PickSlot)
			carts.PUT("/:id/payment-mode", h.Carts.SetPaymentMode)
			carts.DELETE("/:id", h.Carts.DeleteCart)
			carts.POST("/:id/checkout", h.Carts.CheckoutCart)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", h.Bookings.ListMyBookings)
			bookings.GET("/:id", h.Bookings.GetMyBooking)
			bookings.POST("/:id/cancel", h.Bookings.CancelBooking)
			bookings.POST("/:id/payments", h.Bookings.CreatePayment)
			bookings.POST("/:id/payments/confirm", h.Bookings.ConfirmPayment)
		}

		owner := api.Group("/owner", utils.RequireRole(models.RoleOwner))
		{
			owner.POST("/shop", controllers.AddShop)
			owner.GET("/shop", controllers.GetMyShop)
			owner.PUT("/shop", controllers.UpdateShop)
			owner.PUT("/shop/timing", controllers.UpdateShopTiming)
			owner.PUT("/shop/notifications", controllers.UpdateNotificationSettings)

			barbers := owner.Group("/barbers")
			{
				barbers.POST("", controllers.CreateBarber)
				barbers.GET("", controllers.GetBarbers)
				barbers.GET("/:id", controllers.GetBarber)
				barbers.PUT("/:id", controllers.UpdateBarber)
				barbers.DELETE("/:id", controllers.DeleteBarber)
			}

			services := owner.Group("/services")
			{
				services.POST("", controllers.CreateService)
				services.GET("", controllers.GetServices)
				services.GET("/:id", controllers.GetService)
				services.PUT("/:id", controllers.UpdateService)
				services.DELETE("/:id", controllers.DeleteService)
			}

			templates := owner.Group("/templates")
			{
				templates.POST("", controllers.CreateTemplate)
				templates.GET("", controllers.GetTemplates)
				templates.PUT("/:id", controllers.UpdateTemplate)
				templates.DELETE("/:id", controllers.DeleteTemplate)
			}

			owner.GET("/bookings", h.Bookings.GetShopBookings)
			owner.PUT("/bookings/:id/status", h.Bookings.UpdateBookingStatus)

			reportController := controllers.ReportController{}
			owner.GET("/reports", reportController.GetReportAnalytics)
			owner.GET("/dashboard", controllers.GetDashboardOverview)
		}
	}

	return r
}
