package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Rewards  RewardsConfig
	Discord  DiscordConfig
	Football FootballConfig
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

// RewardsConfig holds the economy tunables
type RewardsConfig struct {
	DailyAmount       float64
	VipDiscount       float64 // multiplier applied to store prices for VIPs
	RankingSize       int
	NotificationLimit int
}

// DiscordConfig holds the webhook used for public announcements. Empty URL
// means announcements are logged instead of delivered.
type DiscordConfig struct {
	WebhookURL      string
	WebhookUsername string
}

// FootballConfig holds the fixture provider settings
type FootballConfig struct {
	BaseURL string
	APIKey  string
	Mock    bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
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
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("MongoDB.Database", "timaocord")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Rewards.DailyAmount", 100.0)
	viper.SetDefault("Rewards.VipDiscount", 0.9)
	viper.SetDefault("Rewards.RankingSize", 50)
	viper.SetDefault("Rewards.NotificationLimit", 50)
	viper.SetDefault("Discord.WebhookUsername", "TimãoCord")
	viper.SetDefault("Football.BaseURL", "https://v3.football.api-sports.io")
	viper.SetDefault("Football.Mock", true)
}
