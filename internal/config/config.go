// Package config loads server settings from the environment.
package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=user password=password dbname=meetgogodb port=5432 sslmode=disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// TelegramBotToken is optional; without it moderator alerts are
	// disabled and reports are only persisted.
	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramModChatID int64  `envconfig:"TELEGRAM_MOD_CHAT_ID"`

	HistoryLimit int `envconfig:"HISTORY_LIMIT" default:"50"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
