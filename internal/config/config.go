package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN" required:"true"`
	DataFile      string        `envconfig:"DATA_FILE" default:"./data/reminders.json"`
	GuildDBPath   string        `envconfig:"GUILD_DB_PATH" default:"./data/guilds.db"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"15m"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
