package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/saneek/qualitybot/internal/reporting"
)

// dailyReportLimit caps how many of yesterday's messages one chat's nightly
// analysis run will classify.
const dailyReportLimit = 500

// newDailyReportTask creates the scheduled task that analyzes yesterday's
// messages for every known chat and sends the resulting report to the first
// configured admin. Chats with nothing to report are skipped silently; a
// failure in one chat does not stop the others.
func newDailyReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_report")

	return func(ctx context.Context) error {
		if len(deps.Config.Telegram.AdminIDs) == 0 {
			return fmt.Errorf("no admin configured to receive the daily report")
		}
		adminID := deps.Config.Telegram.AdminIDs[0]

		day := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
		start := day
		end := day.AddDate(0, 0, 1)
		dayLabel := day.Format("2006-01-02")

		chatIDs, err := deps.Store.ListChatIDs(ctx)
		if err != nil {
			return fmt.Errorf("failed to list chats for daily report: %w", err)
		}

		var failed int
		for _, chatID := range chatIDs {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := reportChat(ctx, deps, chatID, adminID, start, end, dayLabel); err != nil {
				log.ErrorContext(ctx, "Daily report failed for chat", "chat_id", chatID, "error", err)
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("daily report failed for %d of %d chats", failed, len(chatIDs))
		}

		log.InfoContext(ctx, "Daily report completed", "chats", len(chatIDs), "day", dayLabel)
		return nil
	}
}

func reportChat(ctx context.Context, deps TaskDeps, chatID, adminID int64, start, end time.Time, dayLabel string) error {
	result, err := deps.Analysis.Run(ctx, chatID, start, end, dailyReportLimit)
	if err != nil {
		return fmt.Errorf("analysis run failed: %w", err)
	}
	if result.Fetched == 0 {
		return nil
	}

	report, err := deps.Reports.Aggregate(ctx, chatID, start, end)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	stats, err := deps.Reports.ResponseTimeStats(ctx, chatID, start, end)
	if err != nil {
		return fmt.Errorf("response-time stats failed: %w", err)
	}

	lines := append([]string{fmt.Sprintf("Daily report for chat %d", chatID)},
		reporting.RenderReport(dayLabel, dayLabel, report, stats)...)

	_, err = deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: adminID,
		Text:   strings.Join(lines, "\n"),
	})
	if err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	return nil
}
