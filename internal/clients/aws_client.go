package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// AWSOptions selects the region and, for local DynamoDB, an endpoint override.
type AWSOptions struct {
	Region   string
	Endpoint string
}

func LoadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	slog.Info("[AWSClient] Initializing AWS Config...", slog.String("region", opts.Region))

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("[AWSClient] Failed to load AWS config: %w", err)
	}

	slog.Info("[AWSClient] AWS Config Initialized")
	return cfg, nil
}

func NewDynamoDBClient(ctx context.Context, opts AWSOptions) (*dynamodb.Client, error) {
	cfg, err := LoadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}
