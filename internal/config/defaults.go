package config

import "time"

// Default values for configuration.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultDBPath            = "storage.db"
	DefaultDBMaxOpenConns    = 1 // SQLite does not support concurrent writers
	DefaultDBMaxIdleConns    = 1
	DefaultDBConnMaxLifetime = 5 * time.Minute

	DefaultAIBaseURL     = "https://api.openai.com/v1"
	DefaultAITemperature = 0.0
	DefaultAIMaxTokens   = 200
	DefaultAITimeout     = 30 * time.Second
)

// DefaultAIInstruction is the system prompt sent with every classification
// request. It pins the exact output contract so the normalizer has a fighting
// chance even when the model strays.
const DefaultAIInstruction = `You are analyzing workplace chat messages.
Return STRICTLY a JSON object and nothing else:
{
  "sentiment": "positive|neutral|negative",
  "problem": "ok|aggressive_tone|toxic|impolite|unclear|off_topic"
}
If there is no clear problem, use "ok".`

// DefaultMessages holds the default user-facing reply texts.
var DefaultMessages = MessagesConfig{
	WelcomeFmt: "DialogQualityBot is running.\nYour role: %s\n\n" +
		"Commands:\n/start\n/help\n" +
		"/history YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/analyze YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/issues YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/report YYYY-MM-DD YYYY-MM-DD",
	Help: "Commands:\n" +
		"/history YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/analyze YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/issues YYYY-MM-DD YYYY-MM-DD [limit]\n" +
		"/report YYYY-MM-DD YYYY-MM-DD",
	NotAuthorized:      "You are not authorized to use this command.",
	GeneralError:       "An error occurred. Please try again later.",
	NoMessages:         "No messages in this period.",
	NothingToAnalyze:   "No messages to analyze in this period.",
	NoIssues:           "No issues found in this period (or analysis has not been run yet).",
	AnalyzeCompleteFmt: "Done. Analyzed: %d. Problems: %d.",
	UsageHistory:       "Usage: /history YYYY-MM-DD YYYY-MM-DD [limit]",
	UsageAnalyze:       "Usage: /analyze YYYY-MM-DD YYYY-MM-DD [limit]",
	UsageIssues:        "Usage: /issues YYYY-MM-DD YYYY-MM-DD [limit]",
	UsageReport:        "Usage: /report YYYY-MM-DD YYYY-MM-DD",
}
