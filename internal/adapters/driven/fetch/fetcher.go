// Package fetch downloads missing corpus files over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher downloads files with retries, pacing requests with a token bucket.
type Fetcher struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
}

// NewFetcher creates a fetcher from fetch settings. A non-positive request
// rate disables pacing.
func NewFetcher(cfg domain.FetchSettings) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = leveledLogger{}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// SetRetryWait bounds the backoff between attempts.
func (f *Fetcher) SetRetryWait(minWait, maxWait time.Duration) {
	f.client.RetryWaitMin = minWait
	f.client.RetryWaitMax = maxWait
}

// Fetch downloads url into target, creating parent directories. The file
// is written beside target and renamed into place once complete.
func (f *Fetcher) Fetch(ctx context.Context, url, target string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return err
	}
	logger.Debug("Fetched %d bytes from %s", n, url)
	return nil
}

// leveledLogger routes client messages to the application logger.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { logger.Warn("%s %v", msg, kv) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { logger.Warn("%s %v", msg, kv) }
func (leveledLogger) Info(msg string, kv ...interface{})  { logger.Debug("%s %v", msg, kv) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { logger.Debug("%s %v", msg, kv) }
