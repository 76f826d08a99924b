package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewIssuesHandler returns a handler for the /issues command.
func NewIssuesHandler(deps HandlerDeps) bot.HandlerFunc {
	return issuesHandler{deps}.Handle
}

// issuesHandler lists analysis results with a detected problem, newest
// analysis first. Requires admin privileges (enforced by middleware).
type issuesHandler struct {
	deps HandlerDeps
}

func (h issuesHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "issues")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Issues handler called with nil Message or From", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	start, end, err := parseDateRange(args)
	if err != nil {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.UsageIssues)
		return
	}
	limit := parseLimit(args, 2, DefaultIssuesLimit)

	issues, err := h.deps.Store.ListIssues(ctx, chatID, start, end, limit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list issues", "error", err, "chat_id", chatID)
		reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if len(issues) == 0 {
		reply(ctx, b, log, chatID, h.deps.Config.Messages.NoIssues)
		return
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("[%s] %s | %s/%s | %s",
			issue.CreatedAt.UTC().Format("2006-01-02 15:04"),
			issue.Username, issue.Problem, issue.Sentiment, issue.Text))
	}
	sendLines(ctx, b, log, chatID, lines)

	log.InfoContext(ctx, "Issues listed", "chat_id", chatID, "count", len(issues))
}
