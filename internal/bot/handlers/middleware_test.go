package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/saneek/qualitybot/internal/config"
	"github.com/saneek/qualitybot/internal/database"
	"github.com/saneek/qualitybot/internal/reporting"
)

// newTestBot returns a bot wired to a fake Telegram API server and a pointer
// to the request bodies it received.
func newTestBot(t *testing.T) (*tgbot.Bot, *[]string) {
	t.Helper()

	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1}}}`))
	}))
	t.Cleanup(srv.Close)

	b, err := tgbot.New("123456:test-token", tgbot.WithServerURL(srv.URL), tgbot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("failed to create test bot: %v", err)
	}
	return b, &bodies
}

// queryFlagStore flags any aggregate query an unauthorized /report could
// trigger.
type queryFlagStore struct {
	database.Store

	queried bool
}

func (s *queryFlagStore) ReportTotals(context.Context, int64, time.Time, time.Time) (database.Totals, error) {
	s.queried = true
	return database.Totals{}, nil
}

func (s *queryFlagStore) TopProblems(context.Context, int64, time.Time, time.Time, int) ([]database.ProblemCount, error) {
	s.queried = true
	return nil, nil
}

func (s *queryFlagStore) ListTurns(context.Context, int64, time.Time, time.Time) ([]database.Turn, error) {
	s.queried = true
	return nil, nil
}

func testDeps(store database.Store) HandlerDeps {
	cfg := &config.Config{}
	cfg.Telegram.AdminIDs = []int64{42}
	cfg.Messages = config.DefaultMessages

	return HandlerDeps{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:  cfg,
		Store:   store,
		Reports: reporting.NewEngine(store, nil),
	}
}

func commandUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   2,
			Text: text,
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: 500, Type: models.ChatTypeGroup},
		},
	}
}

func TestAdminOnlyDeniesNonAdmin(t *testing.T) {
	b, bodies := newTestBot(t)
	store := &queryFlagStore{}
	deps := testDeps(store)

	handler := AdminOnly(deps)(NewReportHandler(deps))
	handler(context.Background(), b, commandUpdate(7, "/report 2026-03-01 2026-03-02"))

	if store.queried {
		t.Error("store must not be queried for a non-admin sender")
	}
	if len(*bodies) != 1 {
		t.Fatalf("expected exactly one API call (the denial), got %d", len(*bodies))
	}
	if !strings.Contains((*bodies)[0], deps.Config.Messages.NotAuthorized) {
		t.Errorf("denial reply missing %q in %q", deps.Config.Messages.NotAuthorized, (*bodies)[0])
	}
}

func TestAdminOnlyPassesAdminThrough(t *testing.T) {
	b, bodies := newTestBot(t)
	deps := testDeps(&queryFlagStore{})

	var nextCalled bool
	handler := AdminOnly(deps)(func(context.Context, *tgbot.Bot, *models.Update) {
		nextCalled = true
	})
	handler(context.Background(), b, commandUpdate(42, "/report 2026-03-01 2026-03-02"))

	if !nextCalled {
		t.Error("admin sender must reach the wrapped handler")
	}
	if len(*bodies) != 0 {
		t.Errorf("no denial message expected for an admin, got %d API calls", len(*bodies))
	}
}

func TestAdminOnlyIgnoresNonMessageUpdates(t *testing.T) {
	b, bodies := newTestBot(t)
	deps := testDeps(&queryFlagStore{})

	var nextCalled bool
	handler := AdminOnly(deps)(func(context.Context, *tgbot.Bot, *models.Update) {
		nextCalled = true
	})
	handler(context.Background(), b, &models.Update{ID: 3})

	if !nextCalled {
		t.Error("updates without a message pass through to the next handler")
	}
	if len(*bodies) != 0 {
		t.Errorf("no API calls expected, got %d", len(*bodies))
	}
}
