package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/igrostore/storebot/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Migrate() error {
	if err := s.db.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// UpsertUser inserts the user on first contact and refreshes the
// mutable fields afterwards. JoinedAt is never touched on conflict, so
// repeated upserts stay idempotent merges.
func (s *Storage) UpsertUser(ctx context.Context, user *models.User) error {
	user.LastSeen = time.Now().UTC()

	if err := s.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username",
				"first_name",
				"last_name",
				"last_seen",
			}),
		}).
		Create(user).
		Error; err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}

	return nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.
		WithContext(ctx).
		Model(&models.User{}).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func (s *Storage) CountActiveSince(ctx context.Context, threshold time.Time) (int64, error) {
	var count int64
	if err := s.db.
		WithContext(ctx).
		Model(&models.User{}).
		Where("last_seen >= ?", threshold).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("counting active users: %w", err)
	}
	return count, nil
}

// ListUserIDs returns the full directory snapshot used by broadcasts.
func (s *Storage) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.
		WithContext(ctx).
		Model(&models.User{}).
		Order("id").
		Pluck("id", &ids).
		Error; err != nil {
		return nil, fmt.Errorf("listing user ids: %w", err)
	}
	return ids, nil
}

// CreateEntry inserts a contest entry unless one already exists for the
// user. It reports whether this call created the row.
func (s *Storage) CreateEntry(ctx context.Context, entry *models.Entry) (bool, error) {
	res := s.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(entry)
	if res.Error != nil {
		return false, fmt.Errorf("creating entry: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (s *Storage) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	var entries []*models.Entry
	if err := s.db.
		WithContext(ctx).
		Order("joined_at").
		Find(&entries).
		Error; err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}
