// Package ledger keeps the durable record of contest participants:
// an insert-once database table mirrored by a best-effort plain-text
// username registry.
package ledger

import (
	"context"
	"fmt"

	"github.com/igrostore/storebot/internal/mirror"
	"github.com/igrostore/storebot/internal/models"
	"github.com/sirupsen/logrus"
)

type EntryStore interface {
	CreateEntry(ctx context.Context, entry *models.Entry) (bool, error)
	ListEntries(ctx context.Context) ([]*models.Entry, error)
}

type Ledger struct {
	store    EntryStore
	registry *mirror.Registry
	notifier *Notifier
}

// New builds a Ledger. notifier may be nil when no webhook is configured.
func New(store EntryStore, registry *mirror.Registry, notifier *Notifier) *Ledger {
	return &Ledger{
		store:    store,
		registry: registry,
		notifier: notifier,
	}
}

// Record adds the user to the ledger. The table write comes first and
// is authoritative; the registry append and the webhook are best-effort
// and only logged on failure. Repeated calls for the same user are
// absorbed without error.
func (l *Ledger) Record(ctx context.Context, userID int64, username string) error {
	created, err := l.store.CreateEntry(ctx, &models.Entry{
		UserID:   userID,
		Username: username,
	})
	if err != nil {
		return fmt.Errorf("recording entry: %w", err)
	}

	if username != "" {
		if err := l.registry.Add(username); err != nil {
			logrus.Warnf("failed to mirror entry for @%s: %v", username, err)
		}
	}

	if created && l.notifier != nil {
		l.notifier.EntryRecorded(userID, username)
	}

	return nil
}

// Entries returns every participant, including those without a public
// username.
func (l *Ledger) Entries(ctx context.Context) ([]*models.Entry, error) {
	entries, err := l.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}
