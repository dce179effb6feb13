// Package reminder runs the daily reminder loop and builds streak
// milestone messages.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// Message is a notification ready for delivery
type Message struct {
	Title string
	Body  string
}

// Sender delivers messages to the user.
type Sender interface {
	Send(Message) error
}

type Store interface {
	GetSettings() (models.Settings, error)
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	HasCompletion(habitID int64, day time.Time) (bool, error)
}

type Scheduler struct {
	store    Store
	sender   Sender
	interval time.Duration

	mu       sync.Mutex
	lastSent string
}

func New(store Store, sender Sender) *Scheduler {
	return &Scheduler{
		store:    store,
		sender:   sender,
		interval: constants.ReminderTickInterval,
	}
}

// Run checks the reminder time on every tick until ctx is cancelled.
// Tick errors are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("reminder loop started", "interval", s.interval)
	for {
		if _, err := s.Tick(time.Now()); err != nil {
			logger.Error("reminder check failed", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("reminder loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick sends the daily reminder if notifications are enabled, now matches the
// configured reminder minute, and no reminder went out during that minute yet.
// It reports whether a message was sent.
func (s *Scheduler) Tick(now time.Time) (bool, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return false, fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return false, nil
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return false, err
	}
	local := now.In(loc)
	if local.Format(constants.TimeFormat) != settings.ReminderTime {
		return false, nil
	}

	key := local.Format(constants.ReminderKeyFormat)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSent == key {
		return false, nil
	}

	msg, err := s.Daily(utils.DateOf(local))
	if err != nil {
		return false, err
	}
	if err := s.sender.Send(msg); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	s.lastSent = key
	return true, nil
}

// Daily builds the reminder for today from the active habits still open.
func (s *Scheduler) Daily(today time.Time) (Message, error) {
	habits, err := s.store.GetAllHabits(false)
	if err != nil {
		return Message{}, err
	}

	incomplete := 0
	for _, h := range habits {
		done, err := s.store.HasCompletion(h.ID, today)
		if err != nil {
			return Message{}, err
		}
		if !done {
			incomplete++
		}
	}
	logger.Debug("daily reminder", "habits", len(habits), "incomplete", incomplete)
	return DailyMessage(incomplete), nil
}

// DailyMessage formats the reminder for a count of incomplete habits.
func DailyMessage(incomplete int) Message {
	if incomplete == 0 {
		return Message{Title: "Great Job!", Body: "All habits completed today!"}
	}
	noun := "habit"
	if incomplete > 1 {
		noun = "habits"
	}
	return Message{
		Title: "Habit Reminder",
		Body:  fmt.Sprintf("You have %d incomplete %s today!", incomplete, noun),
	}
}

// Milestone returns a celebration message when streak is one of the
// configured milestones.
func Milestone(habitName string, streak int) (Message, bool) {
	for _, m := range constants.StreakMilestones {
		if streak == m {
			return Message{
				Title: "Streak Milestone!",
				Body:  fmt.Sprintf("%d day streak on '%s'!", streak, habitName),
			}, true
		}
	}
	return Message{}, false
}

// LogSender writes messages to a print function and the log file.
type LogSender struct {
	Printf func(format string, args ...interface{})
}

func (l LogSender) Send(m Message) error {
	if l.Printf != nil {
		l.Printf("%s %s\n", m.Title, m.Body)
	}
	logger.Info("notification", "title", m.Title, "body", m.Body)
	return nil
}
