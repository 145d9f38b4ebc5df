package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

const (
	produceRetries = 3
	flushTimeoutMs = 5000
)

type KafkaOptions struct {
	Broker          string
	TransactionalID string
}

// KafkaProducer publishes each message in its own transaction, so a report is
// either fully visible to consumers or not at all.
type KafkaProducer struct {
	producer *kafka.Producer
}

func NewKafkaProducer(ctx context.Context, opts KafkaOptions) (*KafkaProducer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", opts.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     opts.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      opts.TransactionalID,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &KafkaProducer{producer: p}, nil
}

func NewMessage(topic, key string, value []byte) *kafka.Message {
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
}

func (kp *KafkaProducer) Publish(ctx context.Context, topic, key string, value []byte) error {
	if err := kp.producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	msg := NewMessage(topic, key, value)

	var err error
	for i := 0; i < produceRetries; i++ {
		err = kp.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		if abortErr := kp.producer.AbortTransaction(ctx); abortErr != nil {
			return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
		}
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	var commitErr error
	for i := 0; i < produceRetries; i++ {
		commitErr = kp.producer.CommitTransaction(ctx)
		if commitErr == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", commitErr.Error()))
	}
	if commitErr != nil {
		return fmt.Errorf("[KafkaClient] failed to commit transaction after %d retries: %w", produceRetries, commitErr)
	}

	slog.Info("[KafkaClient] Published message transactionally",
		slog.String("topic", topic),
		slog.String("key", key))
	return nil
}

func (kp *KafkaProducer) Close() error {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := kp.producer.Flush(flushTimeoutMs); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kp.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
	return nil
}
