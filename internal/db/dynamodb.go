package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

const (
	REPORTS_TABLE_NAME        = "ReviewReports"
	SCORED_REVIEWS_TABLE_NAME = "ScoredReviews"

	maxBatchSize = 25
	maxRetries   = 3
)

// DynamoDBAPI is the part of *dynamodb.Client the report store needs.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type ReportStore struct {
	client  DynamoDBAPI
	ttl     time.Duration
	backoff time.Duration
	now     func() time.Time
}

func NewReportStore(client DynamoDBAPI, ttl time.Duration) *ReportStore {
	return &ReportStore{
		client:  client,
		ttl:     ttl,
		backoff: 500 * time.Millisecond,
		now:     time.Now,
	}
}

// StoreReport writes the scored reviews first and the summary item last, so a
// summary is only visible once every review it refers to has been stored. On
// failure the review rows already sent are deleted again.
func (s *ReportStore) StoreReport(ctx context.Context, reportID string, result *models.AggregateResult) error {
	createdAt := s.now()

	written, err := s.BatchInsertScoredReviews(ctx, reportID, result.Reviews, createdAt)
	if err != nil {
		return errors.Join(err, s.deleteScoredReviews(ctx, reportID, written))
	}

	item, err := ReportToDynamoDBItem(reportID, result, createdAt, s.ttl)
	if err != nil {
		return errors.Join(err, s.deleteScoredReviews(ctx, reportID, written))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(REPORTS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		err = fmt.Errorf("[DynamoDB] Failed to put report %s: %w", reportID, err)
		return errors.Join(err, s.deleteScoredReviews(ctx, reportID, written))
	}

	slog.Info("[DynamoDB] Successfully stored report",
		slog.String("report_id", reportID),
		slog.Int("reviews", len(result.Reviews)))
	return nil
}

// BatchInsertScoredReviews writes the reviews in batches of 25, keyed by
// report id and position. It returns how many leading positions may have
// reached the table, including a batch that failed part way.
func (s *ReportStore) BatchInsertScoredReviews(ctx context.Context, reportID string, reviews []models.ScoredReview, createdAt time.Time) (int, error) {
	offset := 0
	for _, batch := range utils.Chunk(reviews, maxBatchSize) {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return offset, ctx.Err()
		default:
		}

		writeRequests := make([]types.WriteRequest, 0, len(batch))
		for i, review := range batch {
			item, err := ScoredReviewToDynamoDBItem(reportID, offset+i, review, createdAt, s.ttl)
			if err != nil {
				return offset, err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		offset += len(batch)

		if err := s.batchWrite(ctx, writeRequests, "scored reviews"); err != nil {
			return offset, err
		}
	}
	return offset, nil
}

// deleteScoredReviews removes positions [0, count) of a report. It keeps going
// after the caller's context is canceled.
func (s *ReportStore) deleteScoredReviews(ctx context.Context, reportID string, count int) error {
	if count == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	positions := make([]int, count)
	for i := range positions {
		positions[i] = i
	}

	for _, batch := range utils.Chunk(positions, maxBatchSize) {
		deleteRequests := make([]types.WriteRequest, 0, len(batch))
		for _, position := range batch {
			deleteRequests = append(deleteRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: scoredReviewKey(reportID, position)},
			})
		}
		if err := s.batchWrite(ctx, deleteRequests, "scored review deletes"); err != nil {
			slog.Error("[DynamoDB] Failed to roll back scored reviews",
				slog.String("report_id", reportID),
				slog.Any("error", err))
			return err
		}
	}

	slog.Warn("[DynamoDB] Rolled back scored reviews",
		slog.String("report_id", reportID),
		slog.Int("count", count))
	return nil
}

func scoredReviewKey(reportID string, position int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"report_id": &types.AttributeValueMemberS{Value: reportID},
		"position":  &types.AttributeValueMemberN{Value: strconv.Itoa(position)},
	}
}

func (s *ReportStore) batchWrite(ctx context.Context, writeRequests []types.WriteRequest, what string) error {
	out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			SCORED_REVIEWS_TABLE_NAME: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write %s: %w", what, err)
	}

	retryCount := 0
	backoff := s.backoff
	for len(out.UnprocessedItems) > 0 && retryCount < maxRetries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed "+what+"...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[SCORED_REVIEWS_TABLE_NAME])))

		out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error: %w", err)
		}
		retryCount++
	}

	if remaining := len(out.UnprocessedItems[SCORED_REVIEWS_TABLE_NAME]); remaining > 0 {
		return fmt.Errorf("[DynamoDB] %d %s were not written after %d retries", remaining, what, maxRetries)
	}
	return nil
}

// ReportToDynamoDBItem maps the summary fields of a report to an item. The
// per-review rows live in their own table; insights and the top words are
// kept as JSON strings.
func ReportToDynamoDBItem(reportID string, result *models.AggregateResult, createdAt time.Time, ttl time.Duration) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(result)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal report: %w", err)
	}

	insights, err := json.Marshal(result.Insights)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to encode insights: %w", err)
	}
	mostCommon, err := json.Marshal(result.WordAnalysis.MostCommon)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to encode word analysis: %w", err)
	}

	item["report_id"] = &types.AttributeValueMemberS{Value: reportID}
	item["insights"] = &types.AttributeValueMemberS{Value: string(insights)}
	item["most_common"] = &types.AttributeValueMemberS{Value: string(mostCommon)}
	addTimestamps(item, createdAt, ttl)

	return item, nil
}

func ScoredReviewToDynamoDBItem(reportID string, position int, review models.ScoredReview, createdAt time.Time, ttl time.Duration) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(review)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal scored review %q: %w", review.ReviewID, err)
	}

	for k, v := range scoredReviewKey(reportID, position) {
		item[k] = v
	}
	addTimestamps(item, createdAt, ttl)

	return item, nil
}

func addTimestamps(item map[string]types.AttributeValue, createdAt time.Time, ttl time.Duration) {
	item["created_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(createdAt.Unix(), 10)}
	if ttl > 0 {
		item["expires_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(createdAt.Add(ttl).Unix(), 10)}
	}
}
