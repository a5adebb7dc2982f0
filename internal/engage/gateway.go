package engage

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"
)

// ChatOracle answers membership questions against the reference group
// through the Telegram API.
type ChatOracle struct {
	bot   telebot.API
	group *telebot.Chat
}

func NewChatOracle(bot telebot.API, groupID int64) *ChatOracle {
	return &ChatOracle{
		bot:   bot,
		group: &telebot.Chat{ID: groupID},
	}
}

func (o *ChatOracle) MemberStatus(_ context.Context, userID int64) (telebot.MemberStatus, error) {
	member, err := o.bot.ChatMemberOf(o.group, &telebot.User{ID: userID})
	if err != nil {
		return "", fmt.Errorf("querying chat member: %w", err)
	}
	return member.Role, nil
}

// BotSender adapts the bot to the broadcast engine's per-recipient
// send contract.
type BotSender struct {
	bot telebot.API
}

func NewBotSender(bot telebot.API) *BotSender {
	return &BotSender{bot: bot}
}

func (s *BotSender) SendText(userID int64, text string) error {
	if _, err := s.bot.Send(&telebot.User{ID: userID}, text); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}
