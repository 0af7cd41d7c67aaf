package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DB_URL"`

	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCartDB    int    `mapstructure:"REDIS_CART_DB"`
	CartTTLMinutes int    `mapstructure:"CART_TTL_MINUTES"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours int    `mapstructure:"JWT_EXPIRY_HOURS"`

	// Flat advance charge in rupees, capped at the booking total.
	AdvanceAmount float64 `mapstructure:"ADVANCE_AMOUNT"`

	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`

	TwilioAccountSID     string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `mapstructure:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`
	ReminderSchedule     string `mapstructure:"REMINDER_SCHEDULE"`

	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`
}

var AppConfig Config

func LoadConfig() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CART_DB", 0)
	viper.SetDefault("CART_TTL_MINUTES", 30)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("ADVANCE_AMOUNT", 20)
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_PHONE_NUMBER", "")
	viper.SetDefault("TWILIO_WHATSAPP_NUMBER", "")
	viper.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8081"})

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func IsProduction() bool {
	return AppConfig.Env == "production"
}
