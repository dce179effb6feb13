package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

type fakeStore struct {
	settings models.Settings
	habits   []models.Habit
	done     map[int64]bool
	err      error
}

func (f *fakeStore) GetSettings() (models.Settings, error) {
	return f.settings, f.err
}

func (f *fakeStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	return f.habits, nil
}

func (f *fakeStore) HasCompletion(habitID int64, day time.Time) (bool, error) {
	return f.done[habitID], nil
}

type recorder struct {
	sent []Message
	err  error
}

func (r *recorder) Send(m Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

func newFixture() (*fakeStore, *recorder, *Scheduler) {
	store := &fakeStore{
		settings: models.Settings{NotificationsEnabled: true, ReminderTime: "09:00", Timezone: "UTC"},
		habits:   []models.Habit{{ID: 1, Active: true}, {ID: 2, Active: true}, {ID: 3, Active: true}},
		done:     map[int64]bool{1: true},
	}
	rec := &recorder{}
	return store, rec, New(store, rec)
}

func TestTick_SendsOncePerMinute(t *testing.T) {
	_, rec, s := newFixture()
	at := time.Date(2024, 5, 1, 9, 0, 5, 0, time.UTC)

	sent, err := s.Tick(at)
	if err != nil || !sent {
		t.Fatalf("Tick() = %v, %v; want true, nil", sent, err)
	}
	sent, err = s.Tick(at.Add(30 * time.Second))
	if err != nil || sent {
		t.Errorf("second Tick() in the same minute = %v, %v; want false, nil", sent, err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(rec.sent))
	}
	if rec.sent[0].Body != "You have 2 incomplete habits today!" {
		t.Errorf("Body = %q", rec.sent[0].Body)
	}

	// same minute the next day fires again
	if sent, _ := s.Tick(at.AddDate(0, 0, 1)); !sent {
		t.Error("Tick() on the next day should send")
	}
}

func TestTick_Skips(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*fakeStore)
		at     time.Time
	}{
		{"disabled", func(f *fakeStore) { f.settings.NotificationsEnabled = false }, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		{"wrong minute", func(f *fakeStore) {}, time.Date(2024, 5, 1, 9, 1, 0, 0, time.UTC)},
		{"other timezone", func(f *fakeStore) { f.settings.Timezone = "Asia/Tokyo" }, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, rec, s := newFixture()
			tt.modify(store)
			sent, err := s.Tick(tt.at)
			if err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
			if sent || len(rec.sent) != 0 {
				t.Errorf("Tick() sent a message, want none")
			}
		})
	}
}

func TestTick_Errors(t *testing.T) {
	store, rec, s := newFixture()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	rec.err = errors.New("boom")
	if _, err := s.Tick(at); err == nil {
		t.Error("Tick() should surface sender errors")
	}
	rec.err = nil
	if sent, _ := s.Tick(at); !sent {
		t.Error("a failed send should not consume the minute")
	}

	store.err = errors.New("db down")
	if _, err := s.Tick(at.Add(24 * time.Hour)); err == nil {
		t.Error("Tick() should surface store errors")
	}
}

func TestDailyMessage(t *testing.T) {
	tests := []struct {
		incomplete int
		want       string
	}{
		{0, "All habits completed today!"},
		{1, "You have 1 incomplete habit today!"},
		{4, "You have 4 incomplete habits today!"},
	}
	for _, tt := range tests {
		if got := DailyMessage(tt.incomplete).Body; got != tt.want {
			t.Errorf("DailyMessage(%d) = %q, want %q", tt.incomplete, got, tt.want)
		}
	}
}

func TestMilestone(t *testing.T) {
	msg, ok := Milestone("Read", 30)
	if !ok {
		t.Fatal("Milestone(30) should trigger")
	}
	if msg.Body != "30 day streak on 'Read'!" {
		t.Errorf("Body = %q", msg.Body)
	}
	if _, ok := Milestone("Read", 31); ok {
		t.Error("Milestone(31) should not trigger")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	_, _, s := newFixture()
	s.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() returned %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
