// Package tracker refreshes directory records in the background so
// that handlers never wait on the database to reply to a user.
package tracker

import (
	"context"
	"time"

	"github.com/igrostore/storebot/internal/models"
	"github.com/sirupsen/logrus"
)

type Upserter interface {
	UpsertUser(ctx context.Context, user *models.User) error
}

type Tracker struct {
	upserter Upserter
	timeout  time.Duration
	queue    chan models.User
}

func New(upserter Upserter, queueSize int, timeout time.Duration) *Tracker {
	return &Tracker{
		upserter: upserter,
		timeout:  timeout,
		queue:    make(chan models.User, queueSize),
	}
}

// Track submits one upsert for the user and returns immediately. The
// caller never learns the outcome; when the queue is full the update is
// dropped rather than blocking the handler.
func (t *Tracker) Track(user models.User) {
	select {
	case t.queue <- user:
	default:
		logrus.Warnf("activity queue full, dropping update for user %d", user.ID)
	}
}

// Run drains the queue until the context is cancelled. One attempt per
// submission, no retries; failures only surface in the log.
func (t *Tracker) Run(ctx context.Context) {
	logger := logrus.WithField("component", "activity_tracker")

	for {
		select {
		case user := <-t.queue:
			upsertCtx, cancel := context.WithTimeout(context.Background(), t.timeout)
			if err := t.upserter.UpsertUser(upsertCtx, &user); err != nil {
				logger.Errorf("failed to upsert user %d: %v", user.ID, err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
