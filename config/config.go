package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	SinkFile     = "file"
	SinkDynamoDB = "dynamodb"
	SinkKafka    = "kafka"
	SinkValkey   = "valkey"
)

type Config struct {
	AppEnv     string
	InputPath  string
	OutputPath string
	ReportSink string
	LogLevel   string

	VaderCrossCheck bool

	AWSEndpoint string
	AWSRegion   string

	KafkaBroker      string
	KafkaReportTopic string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool

	ReportTTL time.Duration
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "dev"),
		InputPath:  getEnv("INPUT_PATH", "sample_reviews.csv"),
		OutputPath: getEnv("OUTPUT_PATH", "analysis_results.json"),
		ReportSink: strings.ToLower(getEnv("REPORT_SINK", SinkFile)),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		VaderCrossCheck: getEnvBool("VADER_CROSSCHECK"),

		AWSEndpoint: os.Getenv("AWS_ENDPOINT"),
		AWSRegion:   getEnv("AWS_REGION", "us-west-2"),

		KafkaBroker:      getEnv("KAFKA_BROKER", "localhost:29092"),
		KafkaReportTopic: getEnv("KAFKA_REPORT_TOPIC", "review-reports"),

		ValkeyAddress:  getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:      getEnvBool("VALKEY_TLS"),

		ReportTTL: getEnvDuration("REPORT_TTL", 24*time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("INPUT_PATH is required")
	}

	switch c.ReportSink {
	case SinkFile:
		if c.OutputPath == "" {
			return fmt.Errorf("OUTPUT_PATH is required for the %s sink", SinkFile)
		}
	case SinkDynamoDB, SinkKafka, SinkValkey:
	default:
		return fmt.Errorf("unknown REPORT_SINK %q", c.ReportSink)
	}

	return nil
}
