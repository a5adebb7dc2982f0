package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/igrostore/storebot/internal/config"
	"github.com/igrostore/storebot/internal/engage"
	"github.com/igrostore/storebot/internal/gate"
	"github.com/igrostore/storebot/internal/ledger"
	"github.com/igrostore/storebot/internal/logging"
	"github.com/igrostore/storebot/internal/mirror"
	"github.com/igrostore/storebot/internal/storage"
	"github.com/igrostore/storebot/internal/tracker"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const activityQueueSize = 256

func main() {
	config.SetupCommon()
	logging.Init()

	cfg := config.New()
	logrus.Debugf("config: %+v", cfg)

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	store := storage.New(db)
	if err := store.Migrate(); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	registry, err := mirror.Open(cfg.EntriesFile)
	if err != nil {
		logrus.Fatalf("Failed to open entries registry: %v", err)
	}

	var notifier *ledger.Notifier
	if cfg.EntryWebhookURL != "" {
		notifier = ledger.NewNotifier(cfg.EntryWebhookURL)
	}
	ledg := ledger.New(store, registry, notifier)

	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.TelegramToken,
		Poller: &telebot.LongPoller{
			Timeout:        10 * time.Second,
			AllowedUpdates: []string{"message"},
		},
	})
	if err != nil {
		logrus.Fatalf("Failed to create bot: %v", err)
	}

	trk := tracker.New(store, activityQueueSize, cfg.BotHandleTimeout)
	gt := gate.New(engage.NewChatOracle(bot, cfg.GroupID), ledg)

	eng := engage.New(cfg, store, ledg, gt, trk, bot)
	eng.Register(bot)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		bot.Start()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		trk.Run(ctx)
	}()

	<-ctx.Done()

	bot.Stop()

	logrus.Info("waiting for services to finish")
	wg.Wait()
}
