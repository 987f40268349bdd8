// Package config loads server configuration from the environment. A .env
// file in the working directory is honoured when present; every value has a
// local-development default except the optional Discord pair.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBConnStr string
	HTTPAddr  string
	APIToken  string

	// Both must be set for the Discord forwarder to be enabled.
	DiscordBotToken  string
	DiscordChannelID string
}

// Load reads configuration from .env (if any) and the process environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBConnStr:        dbConnStr(),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		APIToken:         getenv("API_TOKEN", "dev-token"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}
}

// DiscordEnabled reports whether the Discord forwarder is configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordChannelID != ""
}

func dbConnStr() string {
	if s := os.Getenv("DB_CONN_STR"); s != "" {
		return s
	}

	// Build it from individual vars (Docker friendly)
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	password := getenv("DB_PASSWORD", "postgres")
	dbname := getenv("DB_NAME", "reserveops")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
