package main

import (
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alphafeeds/relay_bot/internal/auth"
	"github.com/alphafeeds/relay_bot/internal/bot"
	"github.com/alphafeeds/relay_bot/internal/config"
	"github.com/alphafeeds/relay_bot/internal/relay"
	"github.com/alphafeeds/relay_bot/internal/settings"
	"github.com/alphafeeds/relay_bot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v\n", err)
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Error connecting to database: %v\n", err)
		}
		defer pg.Close()
		st = pg
	} else {
		st = store.NewFileStore(cfg.ConfigFile)
	}

	manager, err := settings.NewManager(st)
	if err != nil {
		log.Fatalf("Error loading settings: %v\n", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Error creating Telegram bot: %v\n", err)
	}

	guard := auth.NewGuard(cfg.SuperAdmins)
	pipeline := relay.New(manager, bot.NewTelegramSender(botAPI), cfg.Marker)
	service := bot.New(botAPI, botAPI.Self.UserName, manager, guard, pipeline)

	status := "Running"
	if manager.Snapshot().Paused {
		status = "Paused"
	}

	log.Printf("Relay bot started as @%s\n", botAPI.Self.UserName)
	log.Printf("Super admins: %s\n", strings.Join(cfg.SuperAdmins, ", "))
	log.Printf("Initial status: %s\n", status)

	service.Start(botAPI)
}
