package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

var ErrKafkaDisabled = errors.New("kafka publisher has no brokers")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by order id so the
// changes of one order stay in partition order.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher accepts a comma separated broker list.
func NewKafkaPublisher(brokersCSV, topic string) (*KafkaPublisher, error) {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrKafkaDisabled
	}

	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}), nil
}

func newKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := encode(event)
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: payload,
			Time:  event.OccurredAt.UTC(),
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(event.Type)},
			},
		})
	}
	return p.writer.WriteMessages(ctx, messages...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
