// Package gate decides whether a user may enter the contest. Entry
// requires membership in the store's Telegram group; any doubt denies.
package gate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// Oracle answers membership questions about the reference group.
type Oracle interface {
	MemberStatus(ctx context.Context, userID int64) (telebot.MemberStatus, error)
}

// Recorder persists granted entries.
type Recorder interface {
	Record(ctx context.Context, userID int64, username string) error
}

type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeDenied  Outcome = "denied"
	OutcomeFailed  Outcome = "verification_failed"
)

type Gate struct {
	oracle Oracle
	ledger Recorder
}

func New(oracle Oracle, ledger Recorder) *Gate {
	return &Gate{
		oracle: oracle,
		ledger: ledger,
	}
}

// Admit verifies the user's group membership and records the entry on
// grant. An oracle error fails closed: the outcome is OutcomeFailed and
// nothing is written. A non-nil error is returned only when the grant
// itself could not be persisted; callers must not acknowledge success
// in that case.
func (g *Gate) Admit(ctx context.Context, userID int64, username string) (Outcome, error) {
	status, err := g.oracle.MemberStatus(ctx, userID)
	if err != nil {
		logrus.Warnf("membership check failed for user %d: %v", userID, err)
		return OutcomeFailed, nil
	}

	switch status {
	case telebot.Creator, telebot.Administrator, telebot.Member:
		if err := g.ledger.Record(ctx, userID, username); err != nil {
			return OutcomeGranted, fmt.Errorf("recording granted entry: %w", err)
		}
		return OutcomeGranted, nil
	default:
		return OutcomeDenied, nil
	}
}
