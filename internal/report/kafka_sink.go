package report

import (
	"context"

	"github.com/spacesedan/review-analyzer/internal/models"
)

type publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
	Close() error
}

// KafkaSink publishes the encoded report to a topic, keyed by report id.
type KafkaSink struct {
	producer publisher
	topic    string
}

func NewKafkaSink(producer publisher, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Write(ctx context.Context, reportID string, result *models.AggregateResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}
	return s.producer.Publish(ctx, s.topic, reportID, data)
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
