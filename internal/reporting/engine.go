// Package reporting aggregates stored analysis results into the summaries
// rendered by the report commands: label totals, a top-problem ranking, and
// conversation response-time statistics.
package reporting

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/saneek/qualitybot/internal/database"
)

// TopProblemsLimit caps the problem ranking included in a report.
const TopProblemsLimit = 5

// Report is the aggregate summary for one chat and date range.
type Report struct {
	Totals      database.Totals
	TopProblems []database.ProblemCount
}

// Engine computes report aggregates from the store.
type Engine struct {
	store  database.Store
	logger *slog.Logger
}

// NewEngine creates a reporting engine.
func NewEngine(store database.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:  store,
		logger: logger.With("component", "reporting"),
	}
}

// Aggregate computes totals and the top-problem ranking for a chat within
// [start, end). A range with no analysis results yields zero totals and an
// empty ranking, not an error.
func (e *Engine) Aggregate(ctx context.Context, chatID int64, start, end time.Time) (Report, error) {
	var report Report

	totals, err := e.store.ReportTotals(ctx, chatID, start, end)
	if err != nil {
		return report, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	report.Totals = totals

	top, err := e.store.TopProblems(ctx, chatID, start, end, TopProblemsLimit)
	if err != nil {
		return report, fmt.Errorf("failed to rank problems: %w", err)
	}
	report.TopProblems = top

	return report, nil
}

// ResponseTimeStats computes response-time statistics for a chat within
// [start, end). A response is the first later message by a different author;
// messages without one contribute nothing. Responded is false when no pair
// exists in the range.
func (e *Engine) ResponseTimeStats(ctx context.Context, chatID int64, start, end time.Time) (ResponseStats, error) {
	var stats ResponseStats

	turns, err := e.store.ListTurns(ctx, chatID, start, end)
	if err != nil {
		return stats, fmt.Errorf("failed to list turns: %w", err)
	}

	deltas := pairDeltas(turns)
	if len(deltas) == 0 {
		return stats, nil
	}

	stats.Responded = true
	stats.Pairs = len(deltas)
	stats.MeanSeconds = mean(deltas)
	stats.MedianSeconds = median(deltas)
	return stats, nil
}
