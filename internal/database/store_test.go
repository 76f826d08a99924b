package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saneek/qualitybot/internal/database"
)

func setupTestStore(t *testing.T) database.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDB(dbPath, 1, 1, 5*time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func day(d int, hour, minute int) time.Time {
	return time.Date(2026, 3, d, hour, minute, 0, 0, time.UTC)
}

// seedMessage inserts a message from the named author and returns its ID.
func seedMessage(t *testing.T, store database.Store, chatID int64, username, text string, at time.Time) int64 {
	t.Helper()

	require.NoError(t, store.UpsertChat(context.Background(), chatID, "Test Chat"))
	userID, err := store.EnsureUser(context.Background(), username, "viewer")
	require.NoError(t, err)

	msg := &database.Message{ChatID: chatID, UserID: userID, Text: text, CreatedAt: at}
	require.NoError(t, store.SaveMessage(context.Background(), msg))
	require.NotZero(t, msg.MessageID)
	return msg.MessageID
}

func TestStore_ChatAndUserOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("UpsertChat", func(t *testing.T) {
		assert.NoError(t, store.UpsertChat(ctx, 100, "Old Name"))
		assert.NoError(t, store.UpsertChat(ctx, 100, "New Name"))

		ids, err := store.ListChatIDs(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []int64{100}, ids)
	})

	t.Run("UpsertChatRejectsZeroID", func(t *testing.T) {
		assert.Error(t, store.UpsertChat(ctx, 0, "Name"))
	})

	t.Run("EnsureUserIdempotent", func(t *testing.T) {
		first, err := store.EnsureUser(ctx, "Alice Smith", "viewer")
		require.NoError(t, err)

		second, err := store.EnsureUser(ctx, "Alice Smith", "viewer")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		other, err := store.EnsureUser(ctx, "Bob Jones", "viewer")
		require.NoError(t, err)
		assert.NotEqual(t, first, other)
	})

	t.Run("EnsureUserRejectsEmptyName", func(t *testing.T) {
		_, err := store.EnsureUser(ctx, "", "viewer")
		assert.Error(t, err)
	})
}

func TestStore_MessagesAndRanges(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seedMessage(t, store, 100, "Alice", "first", day(1, 9, 0))
	seedMessage(t, store, 100, "Bob", "second", day(1, 10, 0))
	seedMessage(t, store, 100, "Alice", "next day", day(2, 0, 0))
	seedMessage(t, store, 200, "Carol", "other chat", day(1, 9, 30))

	t.Run("HalfOpenRange", func(t *testing.T) {
		// [Mar 1, Mar 2) must include both Mar 1 messages and exclude the
		// message at exactly Mar 2 00:00.
		messages, err := store.ListMessages(ctx, 100, day(1, 0, 0), day(2, 0, 0), 50)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Text)
		assert.Equal(t, "Alice", messages[0].Username)
		assert.Equal(t, "second", messages[1].Text)
	})

	t.Run("ChatIsolation", func(t *testing.T) {
		messages, err := store.ListMessages(ctx, 200, day(1, 0, 0), day(2, 0, 0), 50)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "other chat", messages[0].Text)
	})

	t.Run("LimitApplies", func(t *testing.T) {
		messages, err := store.ListMessages(ctx, 100, day(1, 0, 0), day(3, 0, 0), 1)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "first", messages[0].Text, "limit keeps the oldest messages")
	})

	t.Run("EmptyRange", func(t *testing.T) {
		messages, err := store.ListMessages(ctx, 100, day(10, 0, 0), day(11, 0, 0), 50)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("ReversedRangeIsEmpty", func(t *testing.T) {
		messages, err := store.ListMessages(ctx, 100, day(2, 0, 0), day(1, 0, 0), 50)
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

func TestStore_AnalysisLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id1 := seedMessage(t, store, 100, "Alice", "calm message", day(1, 9, 0))
	id2 := seedMessage(t, store, 100, "Bob", "rude message", day(1, 10, 0))
	id3 := seedMessage(t, store, 100, "Alice", "confusing message", day(1, 11, 0))

	require.NoError(t, store.SaveAnalysis(ctx, id1, "positive", "ok", day(2, 0, 0)))
	require.NoError(t, store.SaveAnalysis(ctx, id2, "negative", "impolite", day(2, 0, 1)))
	require.NoError(t, store.SaveAnalysis(ctx, id3, "neutral", "unclear", day(2, 0, 2)))

	t.Run("ReanalysisOverwrites", func(t *testing.T) {
		require.NoError(t, store.SaveAnalysis(ctx, id2, "negative", "toxic", day(3, 0, 0)))

		issues, err := store.ListIssues(ctx, 100, day(1, 0, 0), day(2, 0, 0), 50)
		require.NoError(t, err)
		require.Len(t, issues, 2, "one result per message, not per run")
	})

	t.Run("IssuesExcludeOK", func(t *testing.T) {
		issues, err := store.ListIssues(ctx, 100, day(1, 0, 0), day(2, 0, 0), 50)
		require.NoError(t, err)
		for _, issue := range issues {
			assert.NotEqual(t, "ok", issue.Problem)
		}
	})

	t.Run("IssuesNewestAnalysisFirst", func(t *testing.T) {
		issues, err := store.ListIssues(ctx, 100, day(1, 0, 0), day(2, 0, 0), 50)
		require.NoError(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, "toxic", issues[0].Problem)
		assert.Equal(t, "unclear", issues[1].Problem)
	})

	t.Run("Totals", func(t *testing.T) {
		totals, err := store.ReportTotals(ctx, 100, day(1, 0, 0), day(2, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, 3, totals.TotalAnalyzed)
		assert.Equal(t, 2, totals.Problems)
		assert.Equal(t, 1, totals.Negative)
		assert.Equal(t, 1, totals.Neutral)
		assert.Equal(t, 1, totals.Positive)
	})

	t.Run("TotalsEmptyRange", func(t *testing.T) {
		totals, err := store.ReportTotals(ctx, 100, day(10, 0, 0), day(11, 0, 0))
		require.NoError(t, err)
		assert.Zero(t, totals.TotalAnalyzed)
		assert.Zero(t, totals.Problems)
	})

	t.Run("TopProblems", func(t *testing.T) {
		id4 := seedMessage(t, store, 100, "Bob", "another rude one", day(1, 12, 0))
		require.NoError(t, store.SaveAnalysis(ctx, id4, "negative", "toxic", day(2, 0, 3)))

		top, err := store.TopProblems(ctx, 100, day(1, 0, 0), day(2, 0, 0), 5)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "toxic", top[0].Problem)
		assert.Equal(t, 2, top[0].Count)
		assert.Equal(t, "unclear", top[1].Problem)
		assert.Equal(t, 1, top[1].Count)
	})
}

func TestStore_TopProblemsTieBreak(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id1 := seedMessage(t, store, 100, "Alice", "one", day(1, 9, 0))
	id2 := seedMessage(t, store, 100, "Bob", "two", day(1, 10, 0))
	require.NoError(t, store.SaveAnalysis(ctx, id1, "neutral", "unclear", day(2, 0, 0)))
	require.NoError(t, store.SaveAnalysis(ctx, id2, "negative", "impolite", day(2, 0, 1)))

	// Equal counts order alphabetically by problem name.
	top, err := store.TopProblems(ctx, 100, day(1, 0, 0), day(2, 0, 0), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "impolite", top[0].Problem)
	assert.Equal(t, "unclear", top[1].Problem)
}

func TestStore_ListTurns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seedMessage(t, store, 100, "Alice", "question?", day(1, 9, 0))
	seedMessage(t, store, 100, "Alice", "/history 2026-03-01 2026-03-02", day(1, 9, 5))
	seedMessage(t, store, 100, "Bob", "answer", day(1, 9, 10))

	turns, err := store.ListTurns(ctx, 100, day(1, 0, 0), day(2, 0, 0))
	require.NoError(t, err)
	require.Len(t, turns, 2, "command messages are excluded from turns")
	assert.True(t, turns[0].CreatedAt.Before(turns[1].CreatedAt))
	assert.NotEqual(t, turns[0].UserID, turns[1].UserID)
}

func TestStore_RunSQLMaintenance(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.RunSQLMaintenance(context.Background()))
}

func TestStore_Ping(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
