// Package broadcast fans one message out to the whole user directory,
// one recipient at a time, under a fixed inter-send delay.
package broadcast

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sender delivers a single message to a single recipient.
type Sender interface {
	SendText(userID int64, text string) error
}

// Report is the aggregate outcome of one broadcast run. Sent+Failed
// always equals Total.
type Report struct {
	JobID  string
	Sent   int
	Failed int
	Total  int
}

type Engine struct {
	sender Sender
	delay  time.Duration
}

func New(sender Sender, delay time.Duration) *Engine {
	return &Engine{
		sender: sender,
		delay:  delay,
	}
}

// Run delivers text to every target in order. A failed send counts
// against the report and never aborts the remaining recipients. The
// loop is deliberately sequential: the inter-send delay is the rate
// ceiling, and it applies whether or not the previous send succeeded.
func (e *Engine) Run(targets []int64, text string) Report {
	rep := Report{
		JobID: uuid.New().String(),
		Total: len(targets),
	}

	logger := logrus.WithFields(logrus.Fields{
		"component": "broadcast",
		"job_id":    rep.JobID,
	})
	logger.Infof("starting broadcast to %d recipients", rep.Total)

	for i, userID := range targets {
		if i > 0 && e.delay > 0 {
			time.Sleep(e.delay)
		}

		if err := e.sender.SendText(userID, text); err != nil {
			rep.Failed++
			logger.Warnf("failed to send to %d: %v", userID, err)
			continue
		}
		rep.Sent++
	}

	logger.Infof("broadcast finished: sent=%d failed=%d total=%d", rep.Sent, rep.Failed, rep.Total)
	return rep
}
