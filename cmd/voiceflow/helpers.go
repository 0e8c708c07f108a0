package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/topn2024/ai-bookkeeping-sub009/internal/classifier"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/engine"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/extract"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/llm"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/merge"
	"github.com/topn2024/ai-bookkeeping-sub009/internal/noise"
)

// buildEngine wires the pipeline from configuration. The AI fallback is
// only attached when an API key is configured; without one the engine
// runs purely deterministic.
func buildEngine(logger *slog.Logger) (*engine.Engine, error) {
	cls, err := classifier.New(classifier.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	merger := merge.New(noise.New(), merge.Config{
		MergeSameCategory: viper.GetBool("merge.same_category"),
	})

	var decomposer engine.Decomposer
	useFallback := false
	if viper.GetString("llm.api_key") != "" {
		chat, err := buildChat(logger)
		if err != nil {
			return nil, err
		}
		decomposer = llm.NewDecomposer(chat, logger)
		useFallback = true
	}

	return engine.New(cls, extract.New(), merger, decomposer, engine.Config{
		UseAIFallback:           useFallback,
		ComplexSegmentThreshold: viper.GetInt("engine.complex_segments"),
	}, logger), nil
}

func buildChat(logger *slog.Logger) (*llm.ResilientChat, error) {
	cfg := llm.DefaultConfig()
	if provider := viper.GetString("llm.provider"); provider != "" {
		cfg.Provider = provider
	}
	cfg.APIKey = viper.GetString("llm.api_key")
	cfg.Model = viper.GetString("llm.model")
	if timeout := viper.GetDuration("llm.timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if viper.IsSet("llm.max_retries") {
		cfg.MaxRetries = viper.GetInt("llm.max_retries")
	}
	if retryDelay := viper.GetDuration("llm.retry_delay"); retryDelay > 0 {
		cfg.RetryDelay = retryDelay
	}
	if temp := viper.GetFloat64("llm.temperature"); temp > 0 {
		cfg.Temperature = temp
	}
	if maxTokens := viper.GetInt("llm.max_tokens"); maxTokens > 0 {
		cfg.MaxTokens = maxTokens
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return llm.NewResilientChat(client, cfg, logger), nil
}

// analysisTimeout bounds one utterance analysis end to end.
func analysisTimeout() time.Duration {
	if timeout := viper.GetDuration("engine.timeout"); timeout > 0 {
		return timeout
	}
	return 10 * time.Second
}
