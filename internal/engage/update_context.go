package engage

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v4"
)

// UpdateContext couples the handler deadline with the telebot update
// and a log entry carrying the update's identity fields.
type UpdateContext struct {
	context.Context
	tc  telebot.Context
	log *logrus.Entry
}

func NewUpdateContext(c context.Context, tc telebot.Context) *UpdateContext {
	fields := logrus.Fields{
		"component": "engage",
		"update_id": tc.Update().ID,
	}
	if chat := tc.Chat(); chat != nil {
		fields["chat_id"] = chat.ID
	}
	if sender := tc.Sender(); sender != nil {
		fields["sender_id"] = sender.ID
		fields["sender_username"] = sender.Username
	}
	if cmd := commandOf(tc.Message()); cmd != "" {
		fields["command"] = cmd
	}

	return &UpdateContext{
		Context: c,
		tc:      tc,
		log:     logrus.WithFields(fields),
	}
}

// commandOf extracts the leading bot command from a message, stripping
// any @botname suffix Telegram appends in group chats.
func commandOf(msg *telebot.Message) string {
	if msg == nil || !strings.HasPrefix(msg.Text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(msg.Text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

func (uc *UpdateContext) L() *logrus.Entry {
	return uc.log
}

func (uc *UpdateContext) Bot() telebot.API {
	return uc.tc.Bot()
}

func (uc *UpdateContext) Message() *telebot.Message {
	return uc.tc.Message()
}

func (uc *UpdateContext) Chat() *telebot.Chat {
	return uc.tc.Chat()
}

func (uc *UpdateContext) Sender() *telebot.User {
	return uc.tc.Sender()
}
