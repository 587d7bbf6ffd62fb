package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"handmade-market/internal/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const (
	HeaderEventType = "event_type"
	HeaderRequestID = "request_id"
)

type Publisher interface {
	Publish(ctx context.Context, key, eventType string, payload any) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }

func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// Kafka publishes JSON events to a single topic, keyed so that every event
// of one order lands on the same partition.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafka(producer sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, key, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(eventType)},
		},
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key: []byte(HeaderRequestID), Value: []byte(reqID),
		})
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.FromCtx(ctx).Debug("event published",
		zap.String("topic", k.topic),
		zap.String("event", eventType),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (k *Kafka) Close() error {
	return k.producer.Close()
}

// Open returns a Kafka publisher when brokers are configured and Nop
// otherwise.
func Open(ctx context.Context, brokers []string, topic string) (Publisher, error) {
	if len(brokers) == 0 {
		logger.FromCtx(ctx).Info("no kafka brokers configured, order events disabled")
		return Nop{}, nil
	}

	producer, err := NewProducer(brokers)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("kafka producer initialized",
		zap.Strings("brokers", brokers),
		zap.String("topic", topic),
	)
	return NewKafka(producer, topic), nil
}
