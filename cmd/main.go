package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"meetgogo/backend/internal/api/handler"
	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/chathub"
	"meetgogo/backend/internal/config"
	"meetgogo/backend/internal/moderation"
	"meetgogo/backend/internal/models"
	"meetgogo/backend/internal/storage"
	"meetgogo/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Participation{},
		&models.ChatHistory{},
		&models.MessageReport{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting MeetGoGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	authSvc := auth.NewService(cfg.JWTSecret)

	// Moderator alerts are optional; without a bot token reports are only
	// persisted.
	modSvc := moderation.NewService(s, nil)
	if cfg.TelegramBotToken != "" {
		botService, err := telegram.NewBotService(cfg.TelegramBotToken, cfg.TelegramModChatID, modSvc)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		modSvc.Notifier = botService
		go botService.Run()
	}

	rooms := chathub.NewRoomManager()
	registry := chathub.NewRegistry(rooms, authSvc)
	gateway := chathub.NewGateway(registry, rooms, s, s, modSvc)

	r := gin.Default()
	h := handler.NewHandler(gateway, registry, s, authSvc, cfg.HistoryLimit)

	r.GET("/healthz", h.Healthz)
	r.POST("/token", h.CreateToken)
	r.GET("/ws", h.ServeWebSocket)
	r.GET("/events/:id/messages", h.GetChatHistory)
	r.PUT("/events/:id/participation", h.SetParticipation)

	h.SetReady()

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
