package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Raffle   RaffleConfig
	WhatsApp WhatsAppConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// RaffleConfig holds reservation-engine configuration
type RaffleConfig struct {
	// HoldDurationMinutes is the validity window of a reservation hold
	HoldDurationMinutes int
	// SweepIntervalMinutes controls the optional expired-hold sweep;
	// zero disables it (expiry is still enforced lazily on claim)
	SweepIntervalMinutes int
}

// WhatsAppConfig holds outbound WhatsApp gateway configuration
type WhatsAppConfig struct {
	BaseURL     string
	APIToken    string
	MockGateway bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, environment variables cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "apprifas")
	viper.SetDefault("JWT.ExpiresIn", 8*60*60) // 8 hours
	viper.SetDefault("Raffle.HoldDurationMinutes", 180)
	viper.SetDefault("Raffle.SweepIntervalMinutes", 0)
	viper.SetDefault("WhatsApp.MockGateway", true)
	viper.SetDefault("LogLevel", "info")
}
