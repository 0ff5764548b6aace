package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	SuperAdmins []string
	ConfigFile  string
	DatabaseURL string
	Marker      string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		SuperAdmins: parseSuperAdmins(os.Getenv("SUPER_ADMIN_LIST")),
		ConfigFile:  os.Getenv("CONFIG_FILE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Marker:      os.Getenv("MARKER"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = "config.json"
	}

	if cfg.Marker == "" {
		cfg.Marker = "[Alpha]"
	}

	return cfg, nil
}

// parseSuperAdmins splits the comma-separated SUPER_ADMIN_LIST value into
// usernames, dropping empty entries and a leading @.
func parseSuperAdmins(raw string) []string {
	var admins []string

	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimPrefix(strings.TrimSpace(part), "@")
		if name != "" {
			admins = append(admins, name)
		}
	}

	return admins
}
