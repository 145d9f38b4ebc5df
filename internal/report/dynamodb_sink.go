package report

import (
	"context"

	"github.com/spacesedan/review-analyzer/internal/models"
)

type reportStore interface {
	StoreReport(ctx context.Context, reportID string, result *models.AggregateResult) error
}

// DynamoDBSink stores the report summary and its scored reviews in DynamoDB.
type DynamoDBSink struct {
	store reportStore
}

func NewDynamoDBSink(store reportStore) *DynamoDBSink {
	return &DynamoDBSink{store: store}
}

func (s *DynamoDBSink) Write(ctx context.Context, reportID string, result *models.AggregateResult) error {
	return s.store.StoreReport(ctx, reportID, result)
}

func (s *DynamoDBSink) Close() error { return nil }
