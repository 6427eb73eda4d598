package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/WST-T/pweaseHiredMe/pkg/model"
	"go.uber.org/zap"
)

type fakeStore struct {
	deleteBeforeCutoff string
	deleteBeforeCount  int64
	deleteBeforeErr    error

	listForDateArg string
	listForDateOut []model.Interview
	listForDateErr error

	countByOwnerOut []model.OwnerCount
	countByOwnerErr error
	countCalled     bool
}

func (f *fakeStore) DeleteBefore(_ context.Context, cutoff string) (int64, error) {
	f.deleteBeforeCutoff = cutoff
	return f.deleteBeforeCount, f.deleteBeforeErr
}

func (f *fakeStore) ListForDate(_ context.Context, date string) ([]model.Interview, error) {
	f.listForDateArg = date
	return f.listForDateOut, f.listForDateErr
}

func (f *fakeStore) CountByOwner(_ context.Context) ([]model.OwnerCount, error) {
	f.countCalled = true
	return f.countByOwnerOut, f.countByOwnerErr
}

type fakeMessenger struct {
	ready chan struct{}
	sent  []string
}

func newFakeMessenger() *fakeMessenger {
	ready := make(chan struct{})
	close(ready)
	return &fakeMessenger{ready: ready}
}

func (f *fakeMessenger) Send(_ context.Context, _ int64, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeMessenger) Ready() <-chan struct{} { return f.ready }

func paris(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func newTestScheduler(t *testing.T, store *fakeStore, m *fakeMessenger, now time.Time) *Scheduler {
	t.Helper()
	s := New(store, m, Config{
		ChannelID:    42,
		Location:     paris(t),
		ReminderHour: 8,
		RankingHour:  20,
	}, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

// =====================================================
// NextRunAt
// =====================================================

func TestNextRunAt(t *testing.T) {
	loc := paris(t)

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			"before target hour fires same day",
			time.Date(2024, 3, 4, 6, 15, 0, 0, loc), 8,
			time.Date(2024, 3, 4, 8, 0, 0, 0, loc),
		},
		{
			"after target hour fires next day",
			time.Date(2024, 3, 4, 9, 0, 0, 0, loc), 8,
			time.Date(2024, 3, 5, 8, 0, 0, 0, loc),
		},
		{
			"exactly at target hour fires next day",
			time.Date(2024, 3, 4, 8, 0, 0, 0, loc), 8,
			time.Date(2024, 3, 5, 8, 0, 0, 0, loc),
		},
		{
			"month rollover",
			time.Date(2024, 3, 31, 21, 0, 0, 0, loc), 20,
			time.Date(2024, 4, 1, 20, 0, 0, 0, loc),
		},
		{
			// DST starts 2024-03-31 in Paris; the next 08:00 is still
			// 08:00 wall clock.
			"spring DST transition keeps wall-clock hour",
			time.Date(2024, 3, 30, 9, 0, 0, 0, loc), 8,
			time.Date(2024, 3, 31, 8, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRunAt(tt.now, tt.hour)
			if !got.Equal(tt.want) {
				t.Errorf("NextRunAt(%v, %d) = %v, want %v", tt.now, tt.hour, got, tt.want)
			}
		})
	}
}

// =====================================================
// Daily reminder
// =====================================================

func TestDailyReminder_sweepsThenPosts(t *testing.T) {
	store := &fakeStore{
		deleteBeforeCount: 2,
		listForDateOut: []model.Interview{
			{OwnerName: "alice", Time: "14:30", Category: "Technical", Description: "System Design"},
			{OwnerName: "bob", Time: model.NoTimeSpecified, Category: "HR", Description: "intro call"},
		},
	}
	m := newFakeMessenger()
	// Monday 2024-03-04, 08:00 Paris.
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.dailyReminder(context.Background())

	if store.deleteBeforeCutoff != "2024-03-03" {
		t.Errorf("retention cutoff = %q, want yesterday", store.deleteBeforeCutoff)
	}
	if store.listForDateArg != "2024-03-04" {
		t.Errorf("reminder queried %q, want today", store.listForDateArg)
	}

	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(m.sent))
	}
	msg := m.sent[0]
	if !strings.HasPrefix(msg, "**Today's Interviews 🚨**") {
		t.Errorf("missing header:\n%s", msg)
	}
	if !strings.Contains(msg, "• **alice** at **14:30**: Technical - System Design") {
		t.Errorf("missing alice line:\n%s", msg)
	}
	if !strings.Contains(msg, "• **bob** at **No time specified**: HR - intro call") {
		t.Errorf("missing bob line:\n%s", msg)
	}
}

func TestDailyReminder_emptyDay(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMessenger()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.dailyReminder(context.Background())

	if len(m.sent) != 1 || m.sent[0] != "No interviews scheduled for today! 🎉" {
		t.Errorf("sent = %v, want the nothing-today message", m.sent)
	}
}

// A failed sweep must not stop the reminder itself.
func TestDailyReminder_sweepErrorStillPosts(t *testing.T) {
	store := &fakeStore{deleteBeforeErr: context.DeadlineExceeded}
	m := newFakeMessenger()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.dailyReminder(context.Background())

	if len(m.sent) != 1 {
		t.Errorf("sent %d messages, want reminder despite sweep failure", len(m.sent))
	}
}

func TestDailyReminder_listErrorSkipsSend(t *testing.T) {
	store := &fakeStore{listForDateErr: context.DeadlineExceeded}
	m := newFakeMessenger()
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.dailyReminder(context.Background())

	if len(m.sent) != 0 {
		t.Errorf("sent = %v, want no send when the store fails", m.sent)
	}
}

// =====================================================
// Weekly ranking
// =====================================================

func TestWeeklyRanking_skipsOutsideSunday(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMessenger()
	// Monday.
	now := time.Date(2024, 3, 4, 20, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.weeklyRanking(context.Background())

	if store.countCalled {
		t.Error("store queried on a non-Sunday tick")
	}
	if len(m.sent) != 0 {
		t.Errorf("sent = %v, want nothing outside Sunday", m.sent)
	}
}

func TestWeeklyRanking_onSunday(t *testing.T) {
	store := &fakeStore{
		countByOwnerOut: []model.OwnerCount{
			{OwnerName: "alice", Count: 2},
			{OwnerName: "bob", Count: 1},
		},
	}
	m := newFakeMessenger()
	// Sunday.
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.weeklyRanking(context.Background())

	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(m.sent))
	}
	msg := m.sent[0]
	if !strings.HasPrefix(msg, "**Weekly Interview Ranking 🏆**") {
		t.Errorf("missing header:\n%s", msg)
	}
	i1 := strings.Index(msg, "1. alice: 2 interviews")
	i2 := strings.Index(msg, "2. bob: 1 interviews")
	if i1 < 0 || i2 < 0 || i1 > i2 {
		t.Errorf("ranking lines wrong:\n%s", msg)
	}
}

func TestWeeklyRanking_emptyOnSunday(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMessenger()
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, paris(t))
	s := newTestScheduler(t, store, m, now)

	s.weeklyRanking(context.Background())

	if len(m.sent) != 1 || m.sent[0] != "No interviews tracked yet! 📭" {
		t.Errorf("sent = %v, want the nothing-tracked message", m.sent)
	}
}

// =====================================================
// Lifecycle
// =====================================================

func TestScheduler_StopBeforeReady(t *testing.T) {
	store := &fakeStore{}
	m := &fakeMessenger{ready: make(chan struct{})} // never ready
	s := newTestScheduler(t, store, m, time.Date(2024, 3, 4, 12, 0, 0, 0, paris(t)))

	s.Start(context.Background())

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not return while jobs were waiting on readiness")
	}

	if len(m.sent) != 0 {
		t.Errorf("jobs fired before the messenger was ready: %v", m.sent)
	}
}

func TestScheduler_StartIdempotent(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMessenger()
	s := newTestScheduler(t, store, m, time.Date(2024, 3, 4, 12, 0, 0, 0, paris(t)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Start(ctx) // second call must not spawn more loops
	s.Stop()
}
