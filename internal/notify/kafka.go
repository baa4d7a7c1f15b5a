package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Kafka publishes alerts to the escalation topic for downstream consumers
// (dashboards, the head-office audit trail).
type Kafka struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewKafka(broker, topic string, logger *logrus.Logger) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

func (k *Kafka) Notify(ctx context.Context, a Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(a.Date),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	k.logger.Debugf("published %s alert for %s", a.Zone, a.Date)
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
