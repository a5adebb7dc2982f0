package main

import (
	"github.com/igrostore/storebot/internal/api"
	"github.com/igrostore/storebot/internal/config"
	"github.com/igrostore/storebot/internal/logging"
	"github.com/igrostore/storebot/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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

	service := api.NewService(cfg, store)
	e := echo.New()
	e.GET("/stats", service.HandleStats())
	e.GET("/entries", service.HandleEntries())
	e.Start(":8080")
}
