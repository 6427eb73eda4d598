package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/WST-T/pweaseHiredMe/internal/command"
	"github.com/WST-T/pweaseHiredMe/internal/format"
	"github.com/WST-T/pweaseHiredMe/internal/validate"
	"github.com/WST-T/pweaseHiredMe/pkg/model"
)

// Schedule creates a new interview owned by the caller.
//
// Usage: !schedule 2024-03-01 14:30 Technical "System Design"
func (h *Handler) Schedule(ctx context.Context, msg *chat.Message, args string) string {
	tokens := command.SplitArgs(args)
	if len(tokens) < 3 {
		return fmt.Sprintf("❌ Usage: %sschedule <date> [time] <type> <description>", h.Prefix)
	}

	if !validate.DateShaped(tokens[0]) {
		return "❌ Invalid format! Please use `YYYY-MM-DD` or `YYYY-MM-DD HH:MM`"
	}
	date, ok := validate.ParseDate(tokens[0])
	if !ok {
		return "❌ Invalid date format! Please use YYYY-MM-DD"
	}

	rest := tokens[1:]
	timeStr := model.NoTimeSpecified
	if validate.TimeShaped(rest[0]) {
		if !validate.ValidTime(rest[0]) {
			return "❌ Invalid time format! Please use HH:MM (24-hour format)"
		}
		timeStr = rest[0]
		rest = rest[1:]
	}

	if len(rest) < 2 {
		return fmt.Sprintf("❌ Usage: %sschedule <date> [time] <type> <description>", h.Prefix)
	}

	iv := &model.Interview{
		OwnerID:     msg.AuthorID,
		OwnerName:   msg.AuthorName,
		Date:        date.Format(model.DateLayout),
		Time:        timeStr,
		Category:    rest[0],
		Description: strings.Join(rest[1:], " "),
	}

	id, err := h.Store.CreateInterview(ctx, iv)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to create interview", "owner_id", msg.AuthorID, "err", err)
		return msgGenericFailure
	}
	h.Logger.Sugar().Infow("interview scheduled", "id", id, "owner_id", msg.AuthorID, "date", iv.Date)

	timeMessage := ""
	if timeStr != model.NoTimeSpecified {
		timeMessage = " at " + timeStr
	}
	return fmt.Sprintf("✅ Interview scheduled for %s%s!", iv.Date, timeMessage)
}

// MyInterviews lists the caller's upcoming interviews.
func (h *Handler) MyInterviews(ctx context.Context, msg *chat.Message, _ string) string {
	interviews, err := h.Store.ListForOwner(ctx, msg.AuthorID, false)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "owner_id", msg.AuthorID, "err", err)
		return msgGenericFailure
	}

	if len(interviews) == 0 {
		return "You have no scheduled interviews! 🎉"
	}
	return format.List(interviews, "Your Scheduled Interviews", false, h.nowLocal())
}

// Total replies with the caller's all-time interview count.
func (h *Handler) Total(ctx context.Context, msg *chat.Message, _ string) string {
	count, err := h.Store.CountForOwner(ctx, msg.AuthorID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to count interviews", "owner_id", msg.AuthorID, "err", err)
		return msgGenericFailure
	}
	return fmt.Sprintf("🎉 You've scheduled %d interviews in total!", count)
}

// UpdateInterview merges partial key=value updates into the caller's record.
//
// Usage: !update_interview 3 date=2024-03-01 time=15:30 type=Technical desc="System Design"
func (h *Handler) UpdateInterview(ctx context.Context, msg *chat.Message, args string) string {
	idStr := args
	rest := ""
	if i := strings.IndexAny(args, " \t"); i >= 0 {
		idStr, rest = args[:i], strings.TrimSpace(args[i+1:])
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || rest == "" {
		return fmt.Sprintf("❌ Usage: %supdate_interview <ID> <key=value...>", h.Prefix)
	}

	updates, err := command.ParseUpdates(rest)
	if errors.Is(err, command.ErrNoValidKeys) {
		return "❌ Valid keys: date=YYYY-MM-DD, time=HH:MM, type=, desc="
	}

	if updates.Date != nil {
		date, ok := validate.ParseDate(*updates.Date)
		if !ok {
			return "❌ Invalid date format! Use YYYY-MM-DD"
		}
		normalized := date.Format(model.DateLayout)
		updates.Date = &normalized
	}
	if updates.Time != nil && !validate.ValidTime(*updates.Time) {
		return "❌ Invalid time format! Use HH:MM (24-hour format)"
	}

	changed, err := h.Store.UpdateInterview(ctx, id, msg.AuthorID, updates)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to update interview", "id", id, "owner_id", msg.AuthorID, "err", err)
		return msgGenericFailure
	}
	if !changed {
		return msgNotYours
	}
	return "✅ Interview updated successfully!"
}

// DeleteInterview removes one of the caller's interviews by id.
func (h *Handler) DeleteInterview(ctx context.Context, msg *chat.Message, args string) string {
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return fmt.Sprintf("❌ Usage: %sdelete_interview <ID>", h.Prefix)
	}

	removed, err := h.Store.DeleteInterview(ctx, id, msg.AuthorID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to delete interview", "id", id, "owner_id", msg.AuthorID, "err", err)
		return msgGenericFailure
	}
	if !removed {
		return msgNotYours
	}
	return "✅ Interview deleted successfully!"
}

// Help replies with the capability listing. The admin section only shows for
// privileged callers.
func (h *Handler) Help(_ context.Context, msg *chat.Message, _ string) string {
	p := h.Prefix
	var b strings.Builder
	b.WriteString("**pweaseHiredMe 🍩**\n")
	b.WriteString("Here's everything I can do!\n")
	b.WriteString("\n📝 **User Commands**\n")
	fmt.Fprintf(&b, "`%sschedule <date> [time] <type> <description>` - Schedule interview\n", p)
	fmt.Fprintf(&b, "  Example: `%sschedule 2024-03-01 14:30 Technical \"System Design\"`\n", p)
	fmt.Fprintf(&b, "`%smy_interviews` - List your upcoming interviews\n", p)
	fmt.Fprintf(&b, "`%stotal` - Show your all-time interview count\n", p)
	fmt.Fprintf(&b, "`%supdate_interview <ID> <key=value>` - Modify interview\n", p)
	b.WriteString("  Valid keys: date=, time=, type=, desc=\n")
	fmt.Fprintf(&b, "`%sdelete_interview <ID>` - Remove interview\n", p)

	if msg.Admin {
		b.WriteString("\n👑 **Admin Commands**\n")
		fmt.Fprintf(&b, "`%sall_interviews` - View all scheduled interviews\n", p)
		fmt.Fprintf(&b, "`%sannounce <message>` - Broadcast to the bot channel\n", p)
	}

	b.WriteString("\n⏰ **Automatic Features**\n")
	b.WriteString("• Daily reminders at 8AM Paris time\n")
	b.WriteString("• Weekly rankings every Sunday\n")
	b.WriteString("• Auto-cleanup of old interviews\n")
	b.WriteString("\n💡 **Pro Tips**\n")
	b.WriteString("• Date format: `YYYY-MM-DD`\n")
	b.WriteString("• Time format: `HH:MM` (24-hour)\n")
	b.WriteString("• Use quotes for multi-word descriptions\n")
	fmt.Fprintf(&b, "• Find IDs with `%smy_interviews`\n", p)
	b.WriteString("• Times are in Paris/CET timezone")
	return b.String()
}
