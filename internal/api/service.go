// Package api exposes the directory stats and the contest entry list
// over HTTP for the store backend.
package api

import (
	"net/http"
	"time"

	"github.com/igrostore/storebot/internal/config"
	"github.com/igrostore/storebot/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Service struct {
	config  *config.Config
	storage *storage.Storage
}

func NewService(cfg *config.Config, store *storage.Storage) *Service {
	return &Service{
		config:  cfg,
		storage: store,
	}
}

func (s *Service) HandleStats() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		total, err := s.storage.CountUsers(ctx)
		if err != nil {
			logrus.Errorf("failed to count users: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count users"})
		}

		startOfToday := time.Now().UTC().Truncate(24 * time.Hour)
		active, err := s.storage.CountActiveSince(ctx, startOfToday)
		if err != nil {
			logrus.Errorf("failed to count active users: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count active users"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"total_users":  total,
			"active_today": active,
		})
	}
}

func (s *Service) HandleEntries() echo.HandlerFunc {
	type entryResponse struct {
		UserID   int64     `json:"user_id"`
		Username string    `json:"username,omitempty"`
		JoinedAt time.Time `json:"joined_at"`
	}

	return func(c echo.Context) error {
		entries, err := s.storage.ListEntries(c.Request().Context())
		if err != nil {
			logrus.Errorf("failed to list entries: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list entries"})
		}

		resp := make([]entryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, entryResponse{
				UserID:   entry.UserID,
				Username: entry.Username,
				JoinedAt: entry.JoinedAt,
			})
		}

		return c.JSON(http.StatusOK, resp)
	}
}
