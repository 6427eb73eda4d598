// Package scheduler runs the bot's two recurring jobs: the morning interview
// reminder (with the retention sweep) and the Sunday evening ranking.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/WST-T/pweaseHiredMe/pkg/model"
	"go.uber.org/zap"
)

// Store is what the scheduled jobs need from the record store.
// *repository.Repository satisfies it.
type Store interface {
	DeleteBefore(ctx context.Context, cutoffDate string) (int64, error)
	ListForDate(ctx context.Context, date string) ([]model.Interview, error)
	CountByOwner(ctx context.Context) ([]model.OwnerCount, error)
}

type Config struct {
	ChannelID    int64
	Location     *time.Location
	ReminderHour int // local hour for the daily reminder
	RankingHour  int // local hour for the ranking check
}

// Scheduler hosts both jobs. They start together once the messenger is ready
// and stop together as a unit.
type Scheduler struct {
	store     Store
	messenger chat.Messenger
	cfg       Config
	log       *zap.SugaredLogger

	now     func() time.Time
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func New(store Store, messenger chat.Messenger, cfg Config, log *zap.Logger) *Scheduler {
	return &Scheduler{
		store:     store,
		messenger: messenger,
		cfg:       cfg,
		log:       log.Sugar(),
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start launches both job loops. Neither fires until the messenger reports
// ready.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(2)
	go s.runDaily(ctx, s.cfg.ReminderHour, "daily_reminder", s.dailyReminder)
	go s.runDaily(ctx, s.cfg.RankingHour, "weekly_ranking", s.weeklyRanking)

	s.log.Infow("scheduled tasks started",
		"reminder_hour", s.cfg.ReminderHour,
		"ranking_hour", s.cfg.RankingHour,
		"timezone", s.cfg.Location.String(),
	)
}

// Stop cancels future ticks for both jobs and waits for the loops to exit. A
// send already in flight may complete or be abandoned with its context.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.log.Info("scheduled tasks stopped")
}

// runDaily fires job once per day at the given local hour.
func (s *Scheduler) runDaily(ctx context.Context, hour int, name string, job func(ctx context.Context)) {
	defer s.wg.Done()

	select {
	case <-ctx.Done():
		return
	case <-s.stopCh:
		return
	case <-s.messenger.Ready():
	}

	for {
		next := NextRunAt(s.now().In(s.cfg.Location), hour)
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			s.log.Debugw("job tick", "job", name)
			job(ctx)
		}
	}
}

// NextRunAt returns the next instant at the given local hour (minute zero)
// strictly after now. now must already be in the target zone; the date
// arithmetic goes through time.Date so DST transitions land on wall-clock
// time.
func NextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, now.Location())
	}
	return next
}

// dailyReminder sweeps expired records, then posts today's interviews.
func (s *Scheduler) dailyReminder(ctx context.Context) {
	nowLocal := s.now().In(s.cfg.Location)
	yesterday := nowLocal.AddDate(0, 0, -1).Format(model.DateLayout)
	today := nowLocal.Format(model.DateLayout)

	deleted, err := s.store.DeleteBefore(ctx, yesterday)
	if err != nil {
		s.log.Errorw("retention sweep failed", "err", err)
	} else if deleted > 0 {
		s.log.Infow("cleaned up old interviews", "deleted", deleted)
	}

	interviews, err := s.store.ListForDate(ctx, today)
	if err != nil {
		s.log.Errorw("failed to load today's interviews", "err", err)
		return
	}

	if len(interviews) == 0 {
		s.send(ctx, "No interviews scheduled for today! 🎉")
		return
	}

	lines := []string{"**Today's Interviews 🚨**"}
	for _, iv := range interviews {
		timeStr := iv.Time
		if timeStr == "" {
			timeStr = model.NoTimeSpecified
		}
		lines = append(lines, fmt.Sprintf("• **%s** at **%s**: %s - %s",
			iv.OwnerName, timeStr, iv.Category, iv.Description))
	}
	s.send(ctx, strings.Join(lines, "\n"))
}

// weeklyRanking posts the per-owner totals. It fires every day at the
// configured hour and returns early unless it is Sunday: the daily poll
// tolerates late process starts better than a once-a-week timer would.
func (s *Scheduler) weeklyRanking(ctx context.Context) {
	if s.now().In(s.cfg.Location).Weekday() != time.Sunday {
		s.log.Debug("not Sunday, skipping weekly ranking")
		return
	}

	counts, err := s.store.CountByOwner(ctx)
	if err != nil {
		s.log.Errorw("failed to load interview counts", "err", err)
		return
	}

	if len(counts) == 0 {
		s.send(ctx, "No interviews tracked yet! 📭")
		return
	}

	lines := []string{"**Weekly Interview Ranking 🏆**"}
	for i, oc := range counts {
		lines = append(lines, fmt.Sprintf("%d. %s: %d interviews", i+1, oc.OwnerName, oc.Count))
	}
	s.send(ctx, strings.Join(lines, "\n"))
}

func (s *Scheduler) send(ctx context.Context, text string) {
	if err := s.messenger.Send(ctx, s.cfg.ChannelID, text); err != nil {
		s.log.Errorw("failed to send scheduled message", "channel_id", s.cfg.ChannelID, "err", err)
	}
}
