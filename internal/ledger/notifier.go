package ledger

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Notifier posts newly recorded entries to the store backend so the
// storefront can show participants without polling the bot's database.
type Notifier struct {
	client *resty.Client
	url    string
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		client: resty.New().SetTimeout(5 * time.Second),
		url:    webhookURL,
	}
}

// EntryRecorded delivers the entry to the webhook. Failures are logged
// and swallowed; the ledger never depends on the webhook's outcome.
func (n *Notifier) EntryRecorded(userID int64, username string) {
	resp, err := n.client.R().
		SetBody(map[string]any{
			"user_id":  userID,
			"username": username,
		}).
		Post(n.url)
	if err != nil {
		logrus.Warnf("failed to deliver entry webhook for user %d: %v", userID, err)
		return
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		logrus.Warnf(
			"entry webhook for user %d returned %d: %s",
			userID,
			resp.StatusCode(),
			string(resp.Body()),
		)
	}
}
