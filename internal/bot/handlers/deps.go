package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/saneek/qualitybot/internal/analysis"
	"github.com/saneek/qualitybot/internal/config"
	"github.com/saneek/qualitybot/internal/database"
	"github.com/saneek/qualitybot/internal/reporting"
)

// AnalysisRunner triggers a batch analysis run over stored messages.
type AnalysisRunner interface {
	Run(ctx context.Context, chatID int64, start, end time.Time, limit int) (analysis.RunResult, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Analysis AnalysisRunner
	Reports  *reporting.Engine
}
