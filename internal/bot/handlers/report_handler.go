package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/saneek/qualitybot/internal/reporting"
)

// NewReportHandler returns a handler for the /report command.
func NewReportHandler(deps HandlerDeps) bot.HandlerFunc {
	return reportHandler{deps}.Handle
}

// reportHandler renders the aggregate quality report for a date range.
// Requires admin privileges (enforced by middleware).
type reportHandler struct {
	deps HandlerDeps
}

func (h reportHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "report")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Report handler called with nil Message or From", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	start, end, err := parseDateRange(args)
	if err != nil {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.UsageReport)
		return
	}

	report, err := h.deps.Reports.Aggregate(ctx, chatID, start, end)
	if err != nil {
		log.ErrorContext(ctx, "Failed to aggregate report", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	stats, err := h.deps.Reports.ResponseTimeStats(ctx, chatID, start, end)
	if err != nil {
		log.ErrorContext(ctx, "Failed to compute response-time stats", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sendLines(ctx, b, log, chatID, reporting.RenderReport(args[0], args[1], report, stats))
	log.InfoContext(ctx, "Report rendered", "chat_id", chatID, "analyzed", report.Totals.TotalAnalyzed)
}
