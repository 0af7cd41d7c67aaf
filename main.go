package main

import (
	"fmt"
	"time"

	"bookmycuts-backend/booking"
	"bookmycuts-backend/config"
	"bookmycuts-backend/controllers"
	"bookmycuts-backend/routes"
	"bookmycuts-backend/services"
	"bookmycuts-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger(config.IsProduction())
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.ConfigureTokens(config.AppConfig.JWTSecret, config.AppConfig.JWTExpiryHours)

	config.ConnectDB()
	config.Migrate()
	config.ConnectRedis()

	calculator := booking.NewCalculator(booking.FromRupees(config.AppConfig.AdvanceAmount))
	directory := services.NewGormShopDirectory(config.DB)
	carts := services.NewRedisCartStore(config.CartCache, time.Duration(config.AppConfig.CartTTLMinutes)*time.Minute)
	bookings := services.NewGormBookingStore(config.DB)

	notifications := services.NewNotificationService(
		config.DB,
		bookings,
		services.NewTwilioSender(config.AppConfig.TwilioAccountSID, config.AppConfig.TwilioAuthToken),
		config.AppConfig.TwilioPhoneNumber,
		config.AppConfig.TwilioWhatsAppNumber,
	)
	scheduler, err := notifications.StartScheduler(config.AppConfig.ReminderSchedule)
	if err != nil {
		logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	checkout := services.NewCheckoutService(calculator, carts, bookings)
	payments := services.NewPaymentService(services.NewStripeGateway(config.AppConfig.StripeSecretKey), bookings, notifications)

	r := routes.SetupRouter(routes.Handlers{
		Shops: &controllers.ShopController{Directory: directory},
		Carts: &controllers.CartController{
			Carts:      carts,
			Directory:  directory,
			Calculator: calculator,
			Checkout:   checkout,
		},
		Bookings: &controllers.BookingController{
			Bookings: bookings,
			Checkout: checkout,
			Payments: payments,
		},
	})
	printRoutes(r)

	logger.Info("Server starting", zap.String("port", config.AppConfig.Port))
	if err := r.Run(":" + config.AppConfig.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
