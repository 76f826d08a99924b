package database

import "time"

// Chat represents a monitored group chat. The chat identifier is stable; the
// display name may change over time and is refreshed on every ingested message.
type Chat struct {
	ChatID    int64     `db:"chat_id"`
	ChatName  string    `db:"chat_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User represents a chat participant. Identity is keyed by display name, not
// by a stable platform ID: distinct accounts sharing a display name merge
// into one row, and a renamed account fragments into several. The aggregates
// downstream inherit this weakness; it is preserved deliberately.
type User struct {
	UserID   int64  `db:"user_id"`
	Username string `db:"username"`
	RoleID   int64  `db:"role_id"`
}

// Message represents an ingested group chat message. Immutable once created.
type Message struct {
	MessageID int64     `db:"message_id"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	Text      string    `db:"message_text"`
	CreatedAt time.Time `db:"created_at"`
}

// ChatMessage is a message joined with its author's display name,
// as listed by /history and fetched by the analysis orchestrator.
type ChatMessage struct {
	MessageID int64     `db:"message_id"`
	Text      string    `db:"message_text"`
	CreatedAt time.Time `db:"created_at"`
	Username  string    `db:"username"`
}

// Issue is an analysis result with a detected problem, joined with the
// offending message and its author.
type Issue struct {
	AnalysisDate time.Time `db:"analysis_date"`
	Sentiment    string    `db:"sentiment"`
	Problem      string    `db:"detected_problem"`
	Text         string    `db:"message_text"`
	CreatedAt    time.Time `db:"created_at"`
	Username     string    `db:"username"`
}

// Totals holds aggregate counts over analysis results joined to messages in a
// date range.
type Totals struct {
	TotalAnalyzed int `db:"total_analyzed"`
	Problems      int `db:"problems"`
	Negative      int `db:"negative_cnt"`
	Neutral       int `db:"neutral_cnt"`
	Positive      int `db:"positive_cnt"`
}

// ProblemCount is one entry of the top-problem ranking.
type ProblemCount struct {
	Problem string `db:"detected_problem"`
	Count   int    `db:"cnt"`
}

// Turn is the minimal projection used for response-time pairing: who wrote
// and when, for non-command messages, ordered by creation time.
type Turn struct {
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
