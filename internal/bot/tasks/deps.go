// Package tasks implements scheduled background tasks: nightly analysis and
// reporting, and database maintenance.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/saneek/qualitybot/internal/analysis"
	"github.com/saneek/qualitybot/internal/config"
	"github.com/saneek/qualitybot/internal/database"
	"github.com/saneek/qualitybot/internal/reporting"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    database.Store
	Analysis *analysis.Orchestrator
	Reports  *reporting.Engine
	TG       *tgbot.Bot
	Config   *config.Config
}
