package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	HTTP   HTTP   `yaml:"http"`
	Mongo  Mongo  `yaml:"mongo"`
	Redis  Redis  `yaml:"redis"`
	SMTP   SMTP   `yaml:"smtp"`
	Twilio Twilio `yaml:"twilio"`
	Chat   Chat   `yaml:"chat"`
}

type HTTP struct {
	// Listen address of the chat API
	Addr string `yaml:"addr" example:":8080"`
}

type Mongo struct {
	// Mongo connection URI
	URI string `yaml:"uri" example:"mongodb://localhost:27017" validate:"required"`
	// Database holding restaurants, tables and reservations
	Database string `yaml:"database" example:"contactia" validate:"required"`
}

type Redis struct {
	// Redis address, leave empty to keep sessions in memory only
	Addr string `yaml:"addr" example:"localhost:6379"`
	// Redis password
	Pass string `yaml:"pass"`
}

type SMTP struct {
	// SMTP host, leave empty to disable confirmation emails
	Host string `yaml:"host" example:"smtp.gmail.com"`
	// SMTP port
	Port int `yaml:"port" example:"587"`
	// SMTP username
	User string `yaml:"user" example:"reservas@restaurantesol.es"`
	// SMTP password
	Pass string `yaml:"pass"`
	// Sender display name
	FromName string `yaml:"from_name" example:"Restaurante Sol"`
	// Sender address
	FromEmail string `yaml:"from_email" example:"reservas@restaurantesol.es"`
}

type Twilio struct {
	// Twilio account SID, leave empty to disable WhatsApp messages
	AccountSID string `yaml:"account_sid" example:"ACXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"`
	// Twilio auth token
	AuthToken string `yaml:"auth_token"`
	// WhatsApp sender number
	WhatsAppFrom string `yaml:"whatsapp_from" example:"whatsapp:+14155238886"`
}

type Chat struct {
	// Restaurant served by this deployment
	RestaurantID int `yaml:"restaurant_id" example:"1"`
	// Restaurant name used in prompts and summaries
	RestaurantName string `yaml:"restaurant_name" example:"Restaurante Sol"`
	// What to do with the draft when no table is available:
	// "reset" drops the whole draft, "retry_time" clears only the time
	AvailabilityRetry string `yaml:"availability_retry" example:"reset" validate:"omitempty,oneof=reset retry_time"`
	// Timeout in seconds for availability / submission / cancellation calls
	TimeoutSeconds int `yaml:"timeout_seconds" example:"5"`
	// Session snapshot TTL in minutes when Redis is configured
	SessionTTLMinutes int `yaml:"session_ttl_minutes" example:"30"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.HTTP.Addr == "" {
		result.HTTP.Addr = ":8080"
	}
	if result.Mongo.URI == "" {
		result.Mongo.URI = "mongodb://localhost:27017"
	}
	if result.Mongo.Database == "" {
		result.Mongo.Database = "contactia"
	}
	if result.Chat.RestaurantID == 0 {
		result.Chat.RestaurantID = 1
	}
	if result.Chat.RestaurantName == "" {
		result.Chat.RestaurantName = "Restaurante Sol"
	}
	if result.Chat.AvailabilityRetry == "" {
		result.Chat.AvailabilityRetry = "reset"
	}
	if result.Chat.TimeoutSeconds == 0 {
		result.Chat.TimeoutSeconds = 5
	}
	if result.Chat.SessionTTLMinutes == 0 {
		result.Chat.SessionTTLMinutes = 30
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
