// Package engage hosts the bot-facing handlers: the /start greeting,
// the gated contest entry, operator stats, and the directory-wide
// broadcast command.
package engage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/igrostore/storebot/internal/broadcast"
	"github.com/igrostore/storebot/internal/config"
	"github.com/igrostore/storebot/internal/gate"
	"github.com/igrostore/storebot/internal/ledger"
	"github.com/igrostore/storebot/internal/models"
	"github.com/igrostore/storebot/internal/storage"
	"github.com/igrostore/storebot/internal/tracker"
	"gopkg.in/telebot.v4"
)

type Engage struct {
	config  *config.Config
	storage *storage.Storage
	ledger  *ledger.Ledger
	gate    *gate.Gate
	tracker *tracker.Tracker
	engine  *broadcast.Engine
}

func New(
	cfg *config.Config,
	store *storage.Storage,
	ledg *ledger.Ledger,
	gt *gate.Gate,
	trk *tracker.Tracker,
	bot telebot.API,
) *Engage {
	return &Engage{
		config:  cfg,
		storage: store,
		ledger:  ledg,
		gate:    gt,
		tracker: trk,
		engine:  broadcast.New(NewBotSender(bot), cfg.SendDelay),
	}
}

func (e *Engage) Register(b *telebot.Bot) {
	b.Handle("/start", e.wrap(e.HandleStart))
	b.Handle("/contest", e.wrap(e.HandleContest))
	b.Handle("/participants", e.wrap(e.HandleParticipants))
	b.Handle("/stats", e.wrap(e.HandleStats))
	b.Handle("/sendall", e.wrap(e.HandleSendAll))
	b.Handle(telebot.OnText, e.wrap(e.HandleText))
}

// wrap tracks the sender's activity on every inbound update before the
// command-specific handler runs, and keeps handler errors from killing
// the dispatcher. The tracking submission is fire-and-forget: its
// result never affects the reply.
func (e *Engage) wrap(h func(*UpdateContext) error) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), e.config.BotHandleTimeout)
		defer cancel()

		uc := NewUpdateContext(ctx, c)

		if s := c.Sender(); s != nil && !s.IsBot {
			e.tracker.Track(models.User{
				ID:        s.ID,
				Username:  s.Username,
				FirstName: s.FirstName,
				LastName:  s.LastName,
			})
		}

		if err := h(uc); err != nil {
			uc.L().Errorf("failed to handle update: %v", err)
		}
		return nil
	}
}

func (e *Engage) HandleStart(uc *UpdateContext) error {
	uc.L().Infof("user %d started the bot", uc.Sender().ID)

	greeting := "Welcome! 👋 Browse the store below, or send /contest to enter the giveaway."

	if e.config.WebAppURL == "" {
		if _, err := uc.Bot().Send(uc.Chat(), greeting); err != nil {
			return fmt.Errorf("sending greeting: %w", err)
		}
		return nil
	}

	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.WebApp("🛒 Open store", &telebot.WebApp{URL: e.config.WebAppURL})))
	if _, err := uc.Bot().Send(uc.Chat(), greeting, markup); err != nil {
		return fmt.Errorf("sending greeting: %w", err)
	}
	return nil
}

func (e *Engage) HandleContest(uc *UpdateContext) error {
	sender := uc.Sender()

	outcome, err := e.gate.Admit(uc, sender.ID, sender.Username)
	if err != nil {
		uc.L().Errorf("failed to persist contest entry: %v", err)
		if _, sendErr := uc.Bot().Send(uc.Chat(), "Something went wrong, please try again later."); sendErr != nil {
			return fmt.Errorf("sending failure reply: %w", sendErr)
		}
		return nil
	}

	var reply string
	switch outcome {
	case gate.OutcomeGranted:
		uc.L().Infof("user %d entered the contest", sender.ID)
		reply = "You're in the giveaway! 🎉 Good luck!"
	default:
		// Denied and verification failure read the same to the user:
		// the gate fails closed.
		reply = "To enter the giveaway, join our group first and then send /contest again."
	}

	if _, err := uc.Bot().Send(uc.Chat(), reply); err != nil {
		return fmt.Errorf("sending contest reply: %w", err)
	}
	return nil
}

func (e *Engage) HandleParticipants(uc *UpdateContext) error {
	if !e.config.IsAdmin(uc.Sender().ID) {
		return nil
	}

	entries, err := e.ledger.Entries(uc)
	if err != nil {
		if _, sendErr := uc.Bot().Send(uc.Chat(), "Failed to load participants, please try again later."); sendErr != nil {
			return fmt.Errorf("sending failure reply: %w", sendErr)
		}
		return fmt.Errorf("listing participants: %w", err)
	}

	if len(entries) == 0 {
		if _, err := uc.Bot().Send(uc.Chat(), "No participants yet."); err != nil {
			return fmt.Errorf("sending participants reply: %w", err)
		}
		return nil
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("Participants (%d):", len(entries)))
	for _, entry := range entries {
		lines = append(lines, entry.String())
	}

	if _, err := uc.Bot().Send(uc.Chat(), strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("sending participants reply: %w", err)
	}
	return nil
}

func (e *Engage) HandleStats(uc *UpdateContext) error {
	if !e.config.IsAdmin(uc.Sender().ID) {
		return nil
	}

	total, err := e.storage.CountUsers(uc)
	if err != nil {
		if _, sendErr := uc.Bot().Send(uc.Chat(), "Failed to load stats, please try again later."); sendErr != nil {
			return fmt.Errorf("sending failure reply: %w", sendErr)
		}
		return fmt.Errorf("counting users: %w", err)
	}

	startOfToday := time.Now().UTC().Truncate(24 * time.Hour)
	active, err := e.storage.CountActiveSince(uc, startOfToday)
	if err != nil {
		if _, sendErr := uc.Bot().Send(uc.Chat(), "Failed to load stats, please try again later."); sendErr != nil {
			return fmt.Errorf("sending failure reply: %w", sendErr)
		}
		return fmt.Errorf("counting active users: %w", err)
	}

	text := fmt.Sprintf("👥 Users: %d\n🟢 Active today: %d", total, active)
	if _, err := uc.Bot().Send(uc.Chat(), text); err != nil {
		return fmt.Errorf("sending stats reply: %w", err)
	}
	return nil
}

func (e *Engage) HandleSendAll(uc *UpdateContext) error {
	if !e.config.IsAdmin(uc.Sender().ID) {
		return nil
	}

	text := strings.TrimSpace(uc.Message().Payload)
	if text == "" {
		if _, err := uc.Bot().Send(uc.Chat(), "Usage: /sendall <message>"); err != nil {
			return fmt.Errorf("sending usage reply: %w", err)
		}
		return nil
	}

	targets, err := e.storage.ListUserIDs(uc)
	if err != nil {
		if _, sendErr := uc.Bot().Send(uc.Chat(), "Failed to load recipients, please try again later."); sendErr != nil {
			return fmt.Errorf("sending failure reply: %w", sendErr)
		}
		return fmt.Errorf("listing recipients: %w", err)
	}

	if len(targets) == 0 {
		if _, err := uc.Bot().Send(uc.Chat(), "No recipients yet."); err != nil {
			return fmt.Errorf("sending empty-directory reply: %w", err)
		}
		return nil
	}

	progress, err := uc.Bot().Send(uc.Chat(), fmt.Sprintf("📨 Broadcasting to %d users…", len(targets)))
	if err != nil {
		return fmt.Errorf("sending progress message: %w", err)
	}

	rep := e.engine.Run(targets, text)

	final := fmt.Sprintf("✅ Broadcast done: %d sent, %d failed, %d total.", rep.Sent, rep.Failed, rep.Total)
	if _, err := uc.Bot().Edit(progress, final); err != nil {
		return fmt.Errorf("editing progress message: %w", err)
	}
	return nil
}

// HandleText catches everything that is not a known command. The
// activity tracking already happened in wrap; there is nothing else to
// do for plain text.
func (e *Engage) HandleText(uc *UpdateContext) error {
	uc.L().Debugf("ignoring non-command text message")
	return nil
}
