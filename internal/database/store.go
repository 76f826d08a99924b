package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertChat inserts a chat or refreshes its display name.
	UpsertChat(ctx context.Context, chatID int64, chatName string) error

	// EnsureUser returns the user ID for a display name, creating the user
	// (and the role, if needed) on first sight.
	EnsureUser(ctx context.Context, username, roleName string) (int64, error)

	// SaveMessage inserts a new message record and sets its MessageID.
	SaveMessage(ctx context.Context, message *Message) error

	// ListMessages retrieves up to limit messages for a chat within
	// [start, end), ordered by creation time ascending.
	ListMessages(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]ChatMessage, error)

	// SaveAnalysis upserts the analysis result for a message. Re-running
	// analysis overwrites the previous result and its timestamp.
	SaveAnalysis(ctx context.Context, messageID int64, sentiment, problem string, analyzedAt time.Time) error

	// ListIssues retrieves analysis results with a detected problem for a chat
	// within [start, end), newest analysis first.
	ListIssues(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]Issue, error)

	// ReportTotals computes aggregate counts over analysis results joined to
	// messages within [start, end).
	ReportTotals(ctx context.Context, chatID int64, start, end time.Time) (Totals, error)

	// TopProblems ranks detected problems (excluding "ok") within [start, end)
	// by count descending, then problem name ascending.
	TopProblems(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]ProblemCount, error)

	// ListTurns retrieves (author, timestamp) pairs for non-command messages
	// within [start, end), ordered by creation time ascending.
	ListTurns(ctx context.Context, chatID int64, start, end time.Time) ([]Turn, error)

	// ListChatIDs returns the identifiers of all known chats.
	ListChatIDs(ctx context.Context) ([]int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) UpsertChat(ctx context.Context, chatID int64, chatName string) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}
	if chatName == "" {
		chatName = "Unnamed chat"
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO chats (chat_id, chat_name, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (chat_id) DO UPDATE SET
            chat_name = excluded.chat_name,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.ExecContext(ctx, query, chatID, chatName, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to upsert chat %d: %w", chatID, err)
	}

	return nil
}

func (s *sqlxStore) EnsureUser(ctx context.Context, username, roleName string) (int64, error) {
	if username == "" {
		return 0, fmt.Errorf("username cannot be empty")
	}
	if roleName == "" {
		roleName = "viewer"
	}

	roleID, err := s.ensureRole(ctx, roleName)
	if err != nil {
		return 0, err
	}

	var userID int64
	err = s.db.GetContext(ctx, &userID, `SELECT user_id FROM users WHERE username = ?`, username)
	switch {
	case err == nil:
		// Colliding display names merge into one user row.
		if _, err := s.db.ExecContext(ctx, `UPDATE users SET role_id = ? WHERE user_id = ?`, roleID, userID); err != nil {
			s.logger.WarnContext(ctx, "Failed to refresh user role", "user_id", userID, "error", err)
		}
		return userID, nil

	case errors.Is(err, sql.ErrNoRows):
		result, err := s.db.ExecContext(ctx, `INSERT INTO users (username, role_id) VALUES (?, ?)`, username, roleID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error inserting user", "username", username, "error", err)
			return 0, fmt.Errorf("failed to insert user %q: %w", username, err)
		}
		userID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted user ID for %q: %w", username, err)
		}
		return userID, nil

	default:
		s.logger.ErrorContext(ctx, "Error looking up user", "username", username, "error", err)
		return 0, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
}

func (s *sqlxStore) ensureRole(ctx context.Context, roleName string) (int64, error) {
	var roleID int64
	err := s.db.GetContext(ctx, &roleID, `SELECT role_id FROM user_roles WHERE role_name = ?`, roleName)
	if err == nil {
		return roleID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up role %q: %w", roleName, err)
	}

	result, err := s.db.ExecContext(ctx, `INSERT INTO user_roles (role_name) VALUES (?)`, roleName)
	if err != nil {
		return 0, fmt.Errorf("failed to insert role %q: %w", roleName, err)
	}
	roleID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted role ID for %q: %w", roleName, err)
	}
	return roleID, nil
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}
	if message.UserID == 0 {
		return fmt.Errorf("message must have a non-zero user_id")
	}
	if message.Text == "" {
		return fmt.Errorf("message must have non-empty text")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	message.CreatedAt = message.CreatedAt.UTC()

	query := `
        INSERT INTO messages (chat_id, user_id, message_text, created_at)
        VALUES (:chat_id, :user_id, :message_text, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message", "chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (chat %d, user %d): %w", message.ChatID, message.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		message.MessageID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving message",
			"chat_id", message.ChatID, "error", err)
	}

	s.logger.DebugContext(ctx, "Message saved successfully",
		"chat_id", message.ChatID, "user_id", message.UserID, "message_id", message.MessageID)
	return nil
}

func (s *sqlxStore) ListMessages(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]ChatMessage, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if limit <= 0 {
		limit = 200
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var messages []ChatMessage
	query := `
        SELECT m.message_id, m.message_text, m.created_at, u.username
        FROM messages m
        JOIN users u ON u.user_id = m.user_id
        WHERE m.chat_id = ? AND m.created_at >= ? AND m.created_at < ?
        ORDER BY m.created_at ASC
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &messages, query, chatID, start.UTC(), end.UTC(), limit)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing messages",
			"chat_id", chatID, "error", err)
		return nil, err
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing messages", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list messages for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Listed messages", "chat_id", chatID, "count", len(messages))
	return messages, nil
}

func (s *sqlxStore) SaveAnalysis(ctx context.Context, messageID int64, sentiment, problem string, analyzedAt time.Time) error {
	if messageID == 0 {
		return fmt.Errorf("message_id cannot be zero")
	}
	if analyzedAt.IsZero() {
		analyzedAt = time.Now().UTC()
	}

	// The primary key on message_id enforces at most one result per message.
	query := `
        INSERT INTO analysis_results (message_id, sentiment, detected_problem, analysis_date)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (message_id) DO UPDATE SET
            sentiment = excluded.sentiment,
            detected_problem = excluded.detected_problem,
            analysis_date = excluded.analysis_date;
    `

	if _, err := s.db.ExecContext(ctx, query, messageID, sentiment, problem, analyzedAt.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error saving analysis result", "message_id", messageID, "error", err)
		return fmt.Errorf("failed to save analysis for message %d: %w", messageID, err)
	}

	return nil
}

func (s *sqlxStore) ListIssues(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]Issue, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if limit <= 0 {
		limit = 20
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var issues []Issue
	query := `
        SELECT ar.analysis_date, ar.sentiment, ar.detected_problem,
               m.message_text, m.created_at, u.username
        FROM analysis_results ar
        JOIN messages m ON m.message_id = ar.message_id
        JOIN users u ON u.user_id = m.user_id
        WHERE m.chat_id = ?
          AND m.created_at >= ? AND m.created_at < ?
          AND ar.detected_problem <> ''
          AND ar.detected_problem <> 'ok'
        ORDER BY ar.analysis_date DESC
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &issues, query, chatID, start.UTC(), end.UTC(), limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing issues", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list issues for chat %d: %w", chatID, err)
	}

	return issues, nil
}

func (s *sqlxStore) ReportTotals(ctx context.Context, chatID int64, start, end time.Time) (Totals, error) {
	var totals Totals
	if chatID == 0 {
		return totals, fmt.Errorf("chat_id cannot be zero")
	}

	query := `
        SELECT
          COUNT(*) AS total_analyzed,
          COALESCE(SUM(CASE WHEN ar.detected_problem <> '' AND ar.detected_problem <> 'ok' THEN 1 ELSE 0 END), 0) AS problems,
          COALESCE(SUM(CASE WHEN ar.sentiment = 'negative' THEN 1 ELSE 0 END), 0) AS negative_cnt,
          COALESCE(SUM(CASE WHEN ar.sentiment = 'neutral' THEN 1 ELSE 0 END), 0) AS neutral_cnt,
          COALESCE(SUM(CASE WHEN ar.sentiment = 'positive' THEN 1 ELSE 0 END), 0) AS positive_cnt
        FROM analysis_results ar
        JOIN messages m ON m.message_id = ar.message_id
        WHERE m.chat_id = ? AND m.created_at >= ? AND m.created_at < ?;
    `

	if err := s.db.GetContext(ctx, &totals, query, chatID, start.UTC(), end.UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error computing report totals", "chat_id", chatID, "error", err)
		return totals, fmt.Errorf("failed to compute report totals for chat %d: %w", chatID, err)
	}

	return totals, nil
}

func (s *sqlxStore) TopProblems(ctx context.Context, chatID int64, start, end time.Time, limit int) ([]ProblemCount, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if limit <= 0 {
		limit = 5
	}

	var top []ProblemCount
	// Secondary sort on the problem name keeps ties deterministic.
	query := `
        SELECT ar.detected_problem, COUNT(*) AS cnt
        FROM analysis_results ar
        JOIN messages m ON m.message_id = ar.message_id
        WHERE m.chat_id = ? AND m.created_at >= ? AND m.created_at < ?
          AND ar.detected_problem <> ''
          AND ar.detected_problem <> 'ok'
        GROUP BY ar.detected_problem
        ORDER BY cnt DESC, ar.detected_problem ASC
        LIMIT ?;
    `

	err := s.db.SelectContext(ctx, &top, query, chatID, start.UTC(), end.UTC(), limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error ranking problems", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to rank problems for chat %d: %w", chatID, err)
	}

	return top, nil
}

func (s *sqlxStore) ListTurns(ctx context.Context, chatID int64, start, end time.Time) ([]Turn, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var turns []Turn
	query := `
        SELECT user_id, created_at
        FROM messages
        WHERE chat_id = ?
          AND created_at >= ? AND created_at < ?
          AND message_text NOT LIKE '/%'
        ORDER BY created_at ASC;
    `

	err := s.db.SelectContext(ctx, &turns, query, chatID, start.UTC(), end.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing turns", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to list turns for chat %d: %w", chatID, err)
	}

	return turns, nil
}

func (s *sqlxStore) ListChatIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT chat_id FROM chats ORDER BY chat_id ASC`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing chats", "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return ids, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
