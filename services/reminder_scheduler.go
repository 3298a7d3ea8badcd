package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LearnGrowCode/water-timeout-backend/models"
)

// Notifier is the slice of the platform facility the scheduler needs.
type Notifier interface {
	SetCategory(category string, actions []CategoryAction)
	Schedule(n Notification) (string, error)
	CancelAll()
}

var playfulMessages = []string{
	"Hey! Your water bottle is feeling a bit lonely. 💧",
	"Time for a quick sip! Your future self will thank you. ✨",
	"Stay fresh! A little water goes a long way. 🌊",
	"Hydration alert! Don't let your plants be the only ones drinking today. 🌿",
	"Glug glug! Time to top up. 🥛",
}

var neutralMessages = []string{
	"Hydration reminder: It's time to drink some water.",
	"Stay hydrated. Drink water at regular intervals.",
	"Time for your scheduled water intake.",
	"Maintain your hydration goals. Drink water now.",
	"Daily reminder: Don't forget to hydrate.",
}

// reminderHorizonDays bounds how far ahead notifications are materialized.
// Coverage beyond it depends on the next settings change re-invoking Apply.
const reminderHorizonDays = 2

// ReminderScheduler turns reminder settings into a concrete set of pending
// one-shot notifications and keeps that set in sync: every relevant change
// cancels everything and rebuilds the next two days.
type ReminderScheduler struct {
	notifier Notifier

	mu  sync.Mutex
	now func() time.Time

	// SummaryBody, when set, renders the daily summary at delivery time.
	SummaryBody func() string
}

func NewReminderScheduler(notifier Notifier) *ReminderScheduler {
	return &ReminderScheduler{notifier: notifier, now: time.Now}
}

// Apply cancels the whole pending set and, if reminders are enabled,
// regenerates action categories and schedules every instant in the active
// window for today and tomorrow. A scheduling failure aborts the remainder.
func (rs *ReminderScheduler) Apply(s models.HydrationSettings) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.notifier.CancelAll()
	if !s.RemindersEnabled {
		return nil
	}

	actions := make([]CategoryAction, 0, len(s.NotificationActions))
	for _, unit := range s.NotificationActions {
		actions = append(actions, CategoryAction{
			Identifier:  string(unit),
			ButtonTitle: models.ActionButtonTitle(unit),
		})
	}
	rs.notifier.SetCategory(ReminderCategory, actions)

	now := rs.now()
	times, err := ComputeReminderTimes(now, s.ReminderFrequency, s.ActiveWindowStart, s.ActiveWindowEnd)
	if err != nil {
		return err
	}

	channel := ChannelDefault
	sound := "default"
	if s.SoundOverrideEnabled {
		channel = ChannelPremium
		sound = "notification_sound1.mp3"
	}
	title := "Hydration Reminder"
	if s.Tone == models.TonePlayful {
		title = "Drip Drip! 💧"
	}

	for _, t := range times {
		n := Notification{
			Title:    title,
			Body:     reminderMessage(s.Tone),
			Category: ReminderCategory,
			Channel:  channel,
			Sound:    sound,
			Kind:     "reminder",
			FireAt:   t,
		}
		if _, err := rs.notifier.Schedule(n); err != nil {
			return fmt.Errorf("schedule reminder at %s: %w", t.Format(time.RFC3339), err)
		}
	}

	if s.DailySummary {
		if err := rs.scheduleSummaries(now, s); err != nil {
			return err
		}
	}
	return nil
}

// scheduleSummaries adds one summary notification at each day's window end.
func (rs *ReminderScheduler) scheduleSummaries(now time.Time, s models.HydrationSettings) error {
	for day := 0; day < reminderHorizonDays; day++ {
		end, err := windowEnd(now, day, s.ActiveWindowStart, s.ActiveWindowEnd)
		if err != nil {
			return err
		}
		if !end.After(now) {
			continue
		}
		n := Notification{
			Title:    "Daily Summary",
			Body:     "Here's how your hydration went today.",
			Category: ReminderCategory,
			Channel:  ChannelDefault,
			Kind:     "summary",
			FireAt:   end,
			BodyFunc: rs.SummaryBody,
		}
		if _, err := rs.notifier.Schedule(n); err != nil {
			return fmt.Errorf("schedule summary at %s: %w", end.Format(time.RFC3339), err)
		}
	}
	return nil
}

// ComputeReminderTimes materializes the reminder instants for today and
// tomorrow: starting at the window start, stepping by frequency minutes,
// keeping every instant strictly after now and not after the window end. A
// window end numerically earlier than its start spans midnight.
func ComputeReminderTimes(now time.Time, frequency int, start, end string) ([]time.Time, error) {
	if frequency <= 0 {
		return nil, errors.New("reminder frequency must be positive")
	}
	startHour, startMin, err := parseClock(start)
	if err != nil {
		return nil, err
	}

	var times []time.Time
	for day := 0; day < reminderHorizonDays; day++ {
		base := now.AddDate(0, 0, day)
		dayStart := time.Date(base.Year(), base.Month(), base.Day(), startHour, startMin, 0, 0, now.Location())
		dayEnd, err := windowEnd(now, day, start, end)
		if err != nil {
			return nil, err
		}
		for t := dayStart; !t.After(dayEnd); t = t.Add(time.Duration(frequency) * time.Minute) {
			if t.After(now) {
				times = append(times, t)
			}
		}
	}
	return times, nil
}

// windowEnd computes the active window's end instant for now+day days.
func windowEnd(now time.Time, day int, start, end string) (time.Time, error) {
	startHour, startMin, err := parseClock(start)
	if err != nil {
		return time.Time{}, err
	}
	endHour, endMin, err := parseClock(end)
	if err != nil {
		return time.Time{}, err
	}
	base := now.AddDate(0, 0, day)
	dayEnd := time.Date(base.Year(), base.Month(), base.Day(), endHour, endMin, 0, 0, now.Location())
	if endHour*60+endMin < startHour*60+startMin {
		dayEnd = dayEnd.AddDate(0, 0, 1)
	}
	return dayEnd, nil
}

func parseClock(s string) (hour, min int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock value %q", s)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock value %q", s)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour, min, nil
}

func reminderMessage(tone models.Tone) string {
	msgs := neutralMessages
	if tone == models.TonePlayful {
		msgs = playfulMessages
	}
	return msgs[rand.Intn(len(msgs))]
}
