package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient(ctx context.Context, opts ValkeyOptions) (*ValkeyClient, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", opts.Address))
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() error {
	vc.Client.Close()
	return nil
}

// StoreWithTTL sets each key to its value with a millisecond expiry, retrying
// the whole pipeline on failure. A ttl of zero or less stores without expiry.
func (vc *ValkeyClient) StoreWithTTL(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	completed := make([]valkey.Completed, 0, len(entries))
	for key, value := range entries {
		set := vc.Client.B().Set().Key(key).Value(valkey.BinaryString(value))
		if ms := expiryMillis(ttl); ms > 0 {
			completed = append(completed, set.PxMilliseconds(ms).Build())
		} else {
			completed = append(completed, set.Build())
		}
	}

	for _, res := range vc.DoMultiWithRetry(ctx, completed, 3) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] failed to store entries: %w", err)
		}
	}
	return nil
}

// expiryMillis converts ttl for PX, rounding sub-millisecond values up so a
// positive ttl never becomes an immediate expiry.
func expiryMillis(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	ms := ttl.Milliseconds()
	if ttl%time.Millisecond != 0 {
		ms++
	}
	return ms
}

func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, completed []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, completed...)
		err := firstError(results)
		if err == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do Multi failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}

	return results
}

func firstError(results []valkey.ValkeyResult) error {
	for _, r := range results {
		if err := r.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Retrying cannot help when the server is unreachable.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
