package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/saneek/qualitybot/internal/database"
)

// TextClassifier produces a validated label pair for a message text.
// Implementations must be total (never return an error).
type TextClassifier interface {
	Classify(ctx context.Context, text string) (Sentiment, Problem)
}

// RunResult summarizes one analysis run.
type RunResult struct {
	// Fetched is the number of messages found in the date range, including
	// command-like texts that were skipped. Callers use it to distinguish an
	// empty range from a clean zero-problem run.
	Fetched  int
	Analyzed int
	Problems int
}

// Orchestrator runs batch analysis over stored messages for a chat and date
// range. Messages are processed strictly sequentially: one classification
// call in flight at a time, keeping the external API rate bounded and the
// counters deterministic.
type Orchestrator struct {
	store      database.Store
	classifier TextClassifier
	logger     *slog.Logger
}

// NewOrchestrator creates an analysis orchestrator.
func NewOrchestrator(store database.Store, classifier TextClassifier, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		store:      store,
		classifier: classifier,
		logger:     logger.With("component", "orchestrator"),
	}
}

// Run fetches up to limit messages for the chat within [start, end), skips
// command-like texts, classifies the rest one by one, and upserts each
// result. Re-running over the same range overwrites prior results per
// message, making the operation idempotent. Store errors propagate; partial
// progress stays persisted.
func (o *Orchestrator) Run(ctx context.Context, chatID int64, start, end time.Time, limit int) (RunResult, error) {
	var result RunResult

	messages, err := o.store.ListMessages(ctx, chatID, start, end, limit)
	if err != nil {
		return result, fmt.Errorf("failed to fetch messages for analysis: %w", err)
	}
	result.Fetched = len(messages)

	if len(messages) == 0 {
		o.logger.InfoContext(ctx, "No messages to analyze", "chat_id", chatID)
		return result, nil
	}

	o.logger.InfoContext(ctx, "Starting analysis run",
		"chat_id", chatID, "messages", len(messages), "start", start, "end", end)

	for _, msg := range messages {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		text := strings.TrimSpace(msg.Text)
		if strings.HasPrefix(text, "/") {
			continue
		}

		sentiment, problem := o.classifier.Classify(ctx, text)

		if err := o.store.SaveAnalysis(ctx, msg.MessageID, string(sentiment), string(problem), time.Now().UTC()); err != nil {
			return result, fmt.Errorf("failed to persist analysis for message %d: %w", msg.MessageID, err)
		}

		result.Analyzed++
		if problem != ProblemOK {
			result.Problems++
		}
	}

	o.logger.InfoContext(ctx, "Analysis run completed",
		"chat_id", chatID, "analyzed", result.Analyzed, "problems", result.Problems)
	return result, nil
}
