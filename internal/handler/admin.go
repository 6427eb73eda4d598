package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/WST-T/pweaseHiredMe/internal/format"
)

// AllInterviews lists every future interview across owners. Admin only.
func (h *Handler) AllInterviews(ctx context.Context, msg *chat.Message, _ string) string {
	if !msg.Admin {
		return msgAdminOnly
	}

	interviews, err := h.Store.ListAllFuture(ctx)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list all interviews", "err", err)
		return msgGenericFailure
	}

	if len(interviews) == 0 {
		return "No interviews scheduled yet! 📭"
	}
	return format.List(interviews, "All Scheduled Interviews", true, h.nowLocal())
}

// Announce broadcasts text to the bot's configured channel. Admin only.
func (h *Handler) Announce(ctx context.Context, msg *chat.Message, args string) string {
	if !msg.Admin {
		return msgAdminOnly
	}

	text := strings.TrimSpace(args)
	if text == "" {
		return fmt.Sprintf("❌ Usage: %sannounce <message>", h.Prefix)
	}

	announcement := fmt.Sprintf("📢 **Announcement**\n%s\n_From: %s_", text, msg.AuthorName)
	if err := h.Messenger.Send(ctx, h.ChannelID, announcement); err != nil {
		h.Logger.Sugar().Errorw("failed to send announcement", "channel_id", h.ChannelID, "err", err)
		return "⚠️ Could not find the configured announcement channel!"
	}
	return "✅ Announcement sent!"
}
