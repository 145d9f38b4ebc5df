package analyzer

import (
	"context"
	"fmt"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/clients"
	"github.com/spacesedan/review-analyzer/internal/db"
	"github.com/spacesedan/review-analyzer/internal/report"
)

const kafkaTransactionalID = "review-analyzer-producer-1"

// SinkFromConfig returns an opener for the sink named by cfg.ReportSink.
func SinkFromConfig(cfg *config.Config) SinkOpener {
	return func(ctx context.Context) (report.Sink, error) {
		switch cfg.ReportSink {
		case config.SinkFile:
			return report.NewFileSink(cfg.OutputPath), nil

		case config.SinkDynamoDB:
			client, err := clients.NewDynamoDBClient(ctx, clients.AWSOptions{
				Region:   cfg.AWSRegion,
				Endpoint: cfg.AWSEndpoint,
			})
			if err != nil {
				return nil, err
			}
			return report.NewDynamoDBSink(db.NewReportStore(client, cfg.ReportTTL)), nil

		case config.SinkKafka:
			producer, err := clients.NewKafkaProducer(ctx, clients.KafkaOptions{
				Broker:          cfg.KafkaBroker,
				TransactionalID: kafkaTransactionalID,
			})
			if err != nil {
				return nil, err
			}
			return report.NewKafkaSink(producer, cfg.KafkaReportTopic), nil

		case config.SinkValkey:
			client, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
				Address:  cfg.ValkeyAddress,
				Password: cfg.ValkeyPassword,
				UseTLS:   cfg.ValkeyTLS,
			})
			if err != nil {
				return nil, err
			}
			return report.NewValkeySink(client, cfg.ReportTTL), nil

		default:
			return nil, fmt.Errorf("[Analyzer] unknown report sink %q", cfg.ReportSink)
		}
	}
}
