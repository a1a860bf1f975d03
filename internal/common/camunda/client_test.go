package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RecoversFromTransientErrors(t *testing.T) {
	c := newTestClient(3)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	c := newTestClient(2)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("context deadline exceeded")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBrokerUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, 3, stdErr.Metadata["attempts"])
}

func TestExecuteWithRetry_PermanentErrorNotRetried(t *testing.T) {
	c := newTestClient(5)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("permission denied")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, stdErr.Code)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	c := newTestClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.ExecuteWithRetry(ctx, func(context.Context) error {
		return stderrors.New("unavailable")
	}, "topology")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff(t *testing.T) {
	retry := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, backoff(retry, 0))
	assert.Equal(t, 4*time.Second, backoff(retry, 2))
	assert.Equal(t, 5*time.Second, backoff(retry, 3))
	assert.Equal(t, 5*time.Second, backoff(retry, 70))
}
