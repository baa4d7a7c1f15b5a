// Package notify fans escalation alerts out to the configured channels:
// Telegram, email, the Kafka alert topic and connected kitchen displays.
package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Alert is one escalation event for the routine task list.
type Alert struct {
	Zone       string    `json:"zone"`
	Message    string    `json:"message"`
	Audible    bool      `json:"audible"`
	Date       string    `json:"date"`
	Incomplete int       `json:"incomplete"`
	At         time.Time `json:"at"`
}

// Notifier delivers an alert over one channel.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// Fanout dispatches an alert to every channel. Delivery is best effort: a
// failing channel is logged and skipped so the remaining ones still fire.
type Fanout struct {
	logger   *logrus.Logger
	channels []Notifier
}

func NewFanout(logger *logrus.Logger, channels ...Notifier) *Fanout {
	return &Fanout{logger: logger, channels: channels}
}

func (f *Fanout) Notify(ctx context.Context, a Alert) error {
	for _, ch := range f.channels {
		if err := ch.Notify(ctx, a); err != nil {
			f.logger.Errorf("alert dispatch failed: %v", err)
		}
	}
	return nil
}
