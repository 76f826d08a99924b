// Package config manages application configuration from environment variables,
// config files, and default values.
package config

import (
	"errors"
	"time"

	"github.com/go-telegram/bot/models"
)

// ErrConfiguration indicates that configuration loading or validation failed.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via environment
// variables prefixed with BOT_ (e.g., BOT_AI_TOKEN) or through config.yaml.
// It is loaded once at startup and passed to components as an immutable value.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// TelegramConfig holds Telegram transport settings.
type TelegramConfig struct {
	Token    string  `mapstructure:"token"     validate:"required"`
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"required,min=1,dive,gt=0"`

	// BotInfo is populated at startup from GetMe and is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"              validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"min=1,max=10"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"min=1,max=10"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// AIConfig holds settings for the external classification endpoint.
// Token and Model may be empty: classification then degrades to the default
// (neutral, ok) pair instead of failing startup.
type AIConfig struct {
	Token       string        `mapstructure:"token"`
	BaseURL     string        `mapstructure:"base_url"    validate:"required,url"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `mapstructure:"max_tokens"  validate:"min=1,max=4096"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"required,min=1s,max=10m"`
	Instruction string        `mapstructure:"instruction" validate:"required"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds user-facing reply texts.
type MessagesConfig struct {
	WelcomeFmt         string `mapstructure:"welcome"`
	Help               string `mapstructure:"help"`
	NotAuthorized      string `mapstructure:"not_authorized"`
	GeneralError       string `mapstructure:"general_error"`
	NoMessages         string `mapstructure:"no_messages"`
	NothingToAnalyze   string `mapstructure:"nothing_to_analyze"`
	NoIssues           string `mapstructure:"no_issues"`
	AnalyzeCompleteFmt string `mapstructure:"analyze_complete"`
	UsageHistory       string `mapstructure:"usage_history"`
	UsageAnalyze       string `mapstructure:"usage_analyze"`
	UsageIssues        string `mapstructure:"usage_issues"`
	UsageReport        string `mapstructure:"usage_report"`
}

// IsAdmin reports whether the given Telegram user ID is in the admin allowlist.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
