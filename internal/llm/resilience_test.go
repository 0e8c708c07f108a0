package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/common"
)

// flakyClient fails a fixed number of times before answering.
type flakyClient struct {
	err       error
	response  string
	failures  int
	callCount int
}

func (f *flakyClient) Chat(_ context.Context, _ string) (string, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return "", f.err
	}
	return f.response, nil
}

func fastConfig() Config {
	return Config{
		Provider:   "openai",
		Timeout:    time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}
}

func TestResilientChat_RetriesThenSucceeds(t *testing.T) {
	client := &flakyClient{failures: 1, err: errors.New("transient"), response: "ok"}
	chat := NewResilientChat(client, fastConfig(), discardLogger())

	got, err := chat.Chat(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, client.callCount)
}

func TestResilientChat_ExhaustsRetries(t *testing.T) {
	client := &flakyClient{failures: 10, err: errors.New("still down")}
	chat := NewResilientChat(client, fastConfig(), discardLogger())

	_, err := chat.Chat(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 2, client.callCount)
}

func TestResilientChat_EmptyResponseIsFailure(t *testing.T) {
	client := &flakyClient{response: ""}
	chat := NewResilientChat(client, fastConfig(), discardLogger())

	_, err := chat.Chat(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
}

func TestResilientChat_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	client := &flakyClient{failures: 100, err: errors.New("hard down")}
	chat := NewResilientChat(client, fastConfig(), discardLogger())

	for i := 0; i < 5; i++ {
		_, err := chat.Chat(context.Background(), "prompt")
		require.Error(t, err)
	}

	callsBefore := client.callCount
	_, err := chat.Chat(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, callsBefore, client.callCount, "open breaker must not reach the client")
}

func TestNewClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"

	for _, provider := range []string{"openai", "anthropic", "OpenAI"} {
		cfg.Provider = provider
		client, err := NewClient(cfg)
		require.NoError(t, err, provider)
		assert.NotNil(t, client)
	}

	cfg.Provider = "gemini"
	_, err := NewClient(cfg)
	assert.Error(t, err)
}
