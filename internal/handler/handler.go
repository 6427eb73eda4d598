package handler

import (
	"context"
	"time"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/WST-T/pweaseHiredMe/pkg/model"
	"go.uber.org/zap"
)

// InterviewStore is what command handling needs from the record store.
// *repository.Repository satisfies it.
type InterviewStore interface {
	CreateInterview(ctx context.Context, iv *model.Interview) (int64, error)
	ListForOwner(ctx context.Context, ownerID int64, includePast bool) ([]model.Interview, error)
	ListAllFuture(ctx context.Context) ([]model.Interview, error)
	CountForOwner(ctx context.Context, ownerID int64) (int, error)
	UpdateInterview(ctx context.Context, id, ownerID int64, u model.FieldUpdates) (bool, error)
	DeleteInterview(ctx context.Context, id, ownerID int64) (bool, error)
}

type Handler struct {
	Logger    *zap.Logger
	Store     InterviewStore
	Messenger chat.Messenger
	ChannelID int64
	Loc       *time.Location
	Prefix    string

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

func (h *Handler) nowLocal() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().In(h.Loc)
}

const (
	msgGenericFailure = "❌ Something went wrong, please try again later!"
	msgNotYours       = "❌ Interview not found or you don't have permission!"
	msgAdminOnly      = "❌ Sorry, you need administrator permissions to use this command!"
)
