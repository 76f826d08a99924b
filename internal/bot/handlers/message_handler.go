package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/saneek/qualitybot/internal/database"
)

// NewMessageHandler returns the default handler that ingests ordinary group
// messages into storage. Private chats, commands, and non-text updates are
// ignored; ingestion never replies.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if msg.Chat.Type != models.ChatTypeGroup && msg.Chat.Type != models.ChatTypeSupergroup {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	chatID := msg.Chat.ID
	if err := h.deps.Store.UpsertChat(ctx, chatID, msg.Chat.Title); err != nil {
		log.ErrorContext(ctx, "Failed to upsert chat during ingestion", "error", err, "chat_id", chatID)
		return
	}

	userID, err := h.deps.Store.EnsureUser(ctx, displayName(msg.From), "viewer")
	if err != nil {
		log.ErrorContext(ctx, "Failed to ensure user during ingestion", "error", err, "chat_id", chatID)
		return
	}

	record := &database.Message{
		ChatID:    chatID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Unix(int64(msg.Date), 0).UTC(),
	}
	if err := h.deps.Store.SaveMessage(ctx, record); err != nil {
		log.ErrorContext(ctx, "Failed to save ingested message", "error", err, "chat_id", chatID)
		return
	}

	log.DebugContext(ctx, "Message ingested", "chat_id", chatID, "user_id", userID, "message_id", record.MessageID)
}

// displayName builds the author name messages are attributed to: the
// username when set, else first plus last name, else a per-ID placeholder so
// nameless senders never merge into one user row.
func displayName(from *models.User) string {
	if from.Username != "" {
		return from.Username
	}
	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if name != "" {
		return name
	}
	return fmt.Sprintf("user_%d", from.ID)
}
