package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/saneek/qualitybot/internal/config"
)

// ErrNoChoices indicates the endpoint answered without any completion choices.
var ErrNoChoices = errors.New("no response choices available")

// Classifier calls the external classification endpoint for one message at a
// time. It is total: every failure path degrades to the default
// (neutral, ok) pair instead of surfacing an error. A failed classification
// is modeled as "no problem detected", not as an outage.
type Classifier struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	instruction string
	enabled     bool
	logger      *slog.Logger
}

// NewClassifier creates a classification client from config. A missing token
// or model does not fail startup: the classifier is constructed disabled and
// every call returns the default pair.
func NewClassifier(cfg config.AIConfig, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "classifier")

	enabled := cfg.Token != "" && cfg.Model != ""
	if !enabled {
		log.Warn("Classifier credentials or model missing; classification degrades to the default pair")
	}

	clientCfg := openai.DefaultConfig(cfg.Token)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Classifier{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		instruction: cfg.Instruction,
		enabled:     enabled,
		logger:      log,
	}
}

// Classify sends the message text to the classification endpoint and returns
// a validated (sentiment, problem) pair. It never returns an error: empty
// text short-circuits without a network call, and any transport or endpoint
// failure is logged and degraded to the default pair. One outbound call per
// invocation, no retries.
func (c *Classifier) Classify(ctx context.Context, text string) (Sentiment, Problem) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultSentiment, DefaultProblem
	}
	if !c.enabled {
		return DefaultSentiment, DefaultProblem
	}

	sentiment, problem, err := c.classifyOnce(ctx, text)
	if err != nil {
		c.logger.WarnContext(ctx, "Classification failed, degrading to default pair",
			"error", err, "text_length", len(text))
		return DefaultSentiment, DefaultProblem
	}

	return sentiment, problem
}

// classifyOnce performs a single chat-completion request. It returns either a
// validated pair or the failure reason; Classify normalizes the latter into
// the default pair at the boundary.
func (c *Classifier) classifyOnce(ctx context.Context, text string) (Sentiment, Problem, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.instruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return DefaultSentiment, DefaultProblem, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return DefaultSentiment, DefaultProblem, ErrNoChoices
	}

	// Normalize is total; malformed content degrades here, not as an error.
	sentiment, problem := Normalize(resp.Choices[0].Message.Content)
	return sentiment, problem, nil
}
