package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken    string        `mapstructure:"telegram_token"`
	BotHandleTimeout time.Duration `mapstructure:"bot_handle_timeout"`

	// GroupID is the chat whose membership unlocks the contest.
	GroupID  int64  `mapstructure:"group_id"`
	AdminIDs string `mapstructure:"admin_ids"`

	SendDelay       time.Duration `mapstructure:"send_delay"`
	WebAppURL       string        `mapstructure:"web_app_url"`
	EntriesFile     string        `mapstructure:"entries_file"`
	EntryWebhookURL string        `mapstructure:"entry_webhook_url"`

	PostgresDSN string `mapstructure:"postgres_dsn"`

	admins map[int64]struct{}
}

func New() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		logrus.Fatalf("unmarshalling config: %v", err)
	}

	cfg.admins = make(map[int64]struct{})
	for _, raw := range strings.Split(cfg.AdminIDs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logrus.Fatalf("parsing admin id %q: %v", raw, err)
		}
		cfg.admins[id] = struct{}{}
	}

	return cfg
}

// IsAdmin reports whether the user is on the static operator allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	_, ok := c.admins[userID]
	return ok
}

func SetupCommon() {
	viper.SetDefault("bot_handle_timeout", "10s")
	viper.SetDefault("send_delay", "50ms")
	viper.SetDefault("entries_file", "contest_users.txt")
	viper.SetDefault("web_app_url", "https://igrostore.pythonanywhere.com")
	viper.SetEnvPrefix("STOREBOT")

	viper.MustBindEnv("telegram_token")
	viper.MustBindEnv("group_id")
	viper.MustBindEnv("admin_ids")
	viper.MustBindEnv("postgres_dsn")
	viper.AutomaticEnv()
}
