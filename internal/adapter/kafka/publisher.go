package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/eonet-tracker/internal/config"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// Publisher fans newly observed events out to a Kafka topic. It implements
// refresh.Exporter.
type Publisher struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the export topic.
func NewPublisher(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}

	logger.Info("kafka publisher created", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaExportTopic)

	return &Publisher{
		writer: writer,
		clock:  clock,
		logger: logger,
	}
}

// PublishEvents serializes the batch and writes it in a single produce
// request. Messages are keyed by event ID, so updates to the same event land
// on the same partition.
func (p *Publisher) PublishEvents(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		message, err := p.serializeToMessage(event)
		if err != nil {
			return err
		}
		messages = append(messages, message)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}

	p.logger.Debug("published events", "count", len(messages))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) serializeToMessage(event domain.Event) (kafkago.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("failed to serialize event %s: %w", event.ID, err)
	}

	var categoryID string
	if category, ok := event.PrimaryCategory(); ok {
		categoryID = category.ID
	}

	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(categoryID)},
			{Key: "exported_at", Value: []byte(p.clock.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
