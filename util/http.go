package util

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// retryLogger adapts slog to retryablehttp's LeveledLogger. Request errors
// are demoted to WARN because the client is still going to retry them, and
// the retry attempts themselves (logged at DEBUG upstream) are promoted to
// INFO so they show up under the default log level.
type retryLogger struct {
	inner *slog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

// retryPolicy is retryablehttp.DefaultRetryPolicy except that 429 Too Many
// Requests is not retryable: the response carries rate-limit headers the
// caller needs to see, and blind backoff would fight the platform's own
// reset schedule.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// RetryingHTTPClient returns an http.Client with general-purpose timeout and
// retry defaults for outbound API reads: connection errors and 5xx (except
// 501) are retried with backoff. 429 is returned to the caller.
//
// Only use this for idempotent requests. Write calls (posting, liking) must
// not be replayed on ambiguous failures; give those PlainHTTPClient instead.
func RetryingHTTPClient(system string) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(cleanhttp.DefaultPooledTransport())}
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(retryLogger{inner: slog.Default().With("system", system)})
	retryClient.CheckRetry = retryPolicy
	client := retryClient.StandardClient()
	client.Timeout = 30 * time.Second
	return client
}

// PlainHTTPClient returns a pooled client with a request timeout and no
// retries. A failed write surfaces immediately; the caller's next scheduled
// tick is the retry mechanism.
func PlainHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(cleanhttp.DefaultPooledTransport()),
		Timeout:   30 * time.Second,
	}
}
