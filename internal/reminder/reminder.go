// Package reminder schedules recurring progress reminders and one-shot
// milestone alerts and delivers them as desktop notifications.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/i18n"
	"github.com/julianstephens/soberly/internal/logger"
	"github.com/julianstephens/soberly/internal/models"
	"github.com/julianstephens/soberly/internal/sobriety"
)

// Scheduler is the notification surface the tracker depends on.
type Scheduler interface {
	// RequestPermission reports whether notifications can be delivered.
	RequestPermission(ctx context.Context) bool
	// Schedule replaces the recurring reminder with one at freq.
	Schedule(freq models.NotificationFrequency, profile models.SobrietyProfile) error
	// CancelAll removes every pending reminder and alert.
	CancelAll()
	// ScheduleMilestoneAlert arranges a one-shot alert for m on fireAt's day.
	ScheduleMilestoneAlert(m models.HealthMilestone, fireAt time.Time) error
}

// Options configures a Service.
type Options struct {
	Hour     int
	Minute   int
	Location *time.Location
	// Money renders the monthly reminder's savings figure. Defaults to a
	// plain two-decimal number.
	Money func(decimal.Decimal) string
}

// Planned describes a pending notification.
type Planned struct {
	ID    string
	Title string
	Next  time.Time
}

type entry struct {
	id    cron.EntryID
	title string
}

// Service implements Scheduler on top of a cron loop. Recurring message
// bodies are computed when the reminder fires, not when it is scheduled.
type Service struct {
	cron     *cron.Cron
	clock    clock.Clock
	tr       *i18n.Translator
	notifier Notifier
	opts     Options

	mu        sync.Mutex
	entries   map[string]entry
	permitted *bool
}

var _ Scheduler = (*Service)(nil)

// NewService creates a stopped service. Call Start to run the cron loop.
func NewService(clk clock.Clock, tr *i18n.Translator, n Notifier, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Money == nil {
		opts.Money = func(d decimal.Decimal) string { return d.StringFixed(2) }
	}
	cl := cronLogger{}
	return &Service{
		cron: cron.New(
			cron.WithLocation(opts.Location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		clock:    clk,
		tr:       tr,
		notifier: n,
		opts:     opts,
		entries:  make(map[string]entry),
	}
}

// Start runs the cron loop in its own goroutine.
func (s *Service) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for running jobs or ctx expiry.
func (s *Service) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RequestPermission checks deliverability once and caches the answer for
// the life of the service.
func (s *Service) RequestPermission(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permitted != nil {
		return *s.permitted
	}

	ok := true
	if c, isChecker := s.notifier.(Checker); isChecker {
		if err := c.Check(ctx); err != nil {
			logger.Info("Notifications unavailable, reminders disabled", "reason", err)
			ok = false
		}
	}
	s.permitted = &ok
	return ok
}

// Spec returns the cron expression for freq at the configured time of day.
func (s *Service) Spec(freq models.NotificationFrequency) (string, error) {
	return CronSpec(freq, s.opts.Hour, s.opts.Minute)
}

// CronSpec builds the cron expression for a recurring reminder: daily,
// Mondays, or the first of the month.
func CronSpec(freq models.NotificationFrequency, hour, minute int) (string, error) {
	switch freq {
	case models.FrequencyDaily:
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case models.FrequencyWeekly:
		return fmt.Sprintf("%d %d * * 1", minute, hour), nil
	case models.FrequencyMonthly:
		return fmt.Sprintf("%d %d 1 * *", minute, hour), nil
	default:
		return "", fmt.Errorf("unknown notification frequency %q", freq)
	}
}

func (s *Service) Schedule(freq models.NotificationFrequency, profile models.SobrietyProfile) error {
	spec, err := s.Spec(freq)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(constants.RecurringReminderID)
	id, err := s.cron.AddFunc(spec, func() {
		title, body := s.RecurringMessage(freq, profile, s.clock.Now())
		s.deliver(constants.RecurringReminderID, title, body)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.entries[constants.RecurringReminderID] = entry{id: id, title: s.tr.T("notification.title." + string(freq))}
	logger.Debug("Scheduled recurring reminder", "frequency", freq, "spec", spec)
	return nil
}

// ScheduleMilestoneAlert schedules a one-shot alert at the configured
// reminder time on fireAt's calendar day. Alerts whose time has already
// passed are skipped. Scheduling the same milestone again replaces it.
func (s *Service) ScheduleMilestoneAlert(m models.HealthMilestone, fireAt time.Time) error {
	day := fireAt.In(s.opts.Location)
	at := time.Date(day.Year(), day.Month(), day.Day(), s.opts.Hour, s.opts.Minute, 0, 0, s.opts.Location)
	key := constants.MilestoneAlertIDPrefix + m.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(key)
	if !at.After(s.clock.Now()) {
		logger.Debug("Skipping past milestone alert", "milestone", m.ID(), "at", at)
		return nil
	}

	title, body := s.MilestoneMessage(m)
	id := s.cron.Schedule(once{at: at}, cron.FuncJob(func() {
		s.deliver(key, title, body)
		s.mu.Lock()
		s.removeLocked(key)
		s.mu.Unlock()
	}))
	s.entries[key] = entry{id: id, title: title}
	return nil
}

func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		s.removeLocked(key)
	}
}

// Pending lists scheduled notifications ordered by next fire time.
func (s *Service) Pending() []Planned {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().In(s.opts.Location)
	out := make([]Planned, 0, len(s.entries))
	for key, e := range s.entries {
		ce := s.cron.Entry(e.id)
		if !ce.Valid() {
			continue
		}
		next := ce.Next
		if next.IsZero() {
			next = ce.Schedule.Next(now)
		}
		out = append(out, Planned{ID: key, Title: e.title, Next: next})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Next.Equal(out[j].Next) {
			return out[i].ID < out[j].ID
		}
		return out[i].Next.Before(out[j].Next)
	})
	return out
}

// Fire delivers the pending notification with the given ID immediately.
func (s *Service) Fire(key string) error {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("no pending notification %q", key)
	}
	s.cron.Entry(e.id).Job.Run()
	return nil
}

// RecurringMessage builds the localized title and body of a recurring
// reminder as of now.
func (s *Service) RecurringMessage(freq models.NotificationFrequency, profile models.SobrietyProfile, now time.Time) (title, body string) {
	title = s.tr.T("notification.title." + string(freq))
	switch freq {
	case models.FrequencyWeekly:
		metrics := sobriety.Compute(profile, now)
		body = s.tr.Tf("notification.body.weekly", metrics.WeeksSober)
	case models.FrequencyMonthly:
		metrics := sobriety.Compute(profile, now)
		body = s.tr.Tf("notification.body.monthly", s.opts.Money(metrics.MoneySaved))
	default:
		body = s.tr.T("notification.body.daily")
	}
	return title, body
}

// MilestoneMessage builds the localized title and body of a milestone alert.
func (s *Service) MilestoneMessage(m models.HealthMilestone) (title, body string) {
	return s.tr.T("notification.milestone.title"),
		s.tr.Tf("notification.milestone.body", s.tr.T(m.TitleKey), s.tr.T(m.DescriptionKey))
}

func (s *Service) deliver(key, title, body string) {
	if err := s.notifier.Notify(title, body); err != nil {
		logger.Error("Failed to deliver notification", "id", key, "error", err)
		return
	}
	logger.Info("Notification delivered", "id", key)
}

func (s *Service) removeLocked(key string) {
	if e, ok := s.entries[key]; ok {
		s.cron.Remove(e.id)
		delete(s.entries, key)
	}
}

// once fires a single time at the given instant.
type once struct {
	at time.Time
}

func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// cronLogger forwards cron's internal logging to a "cron" child of the
// application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if l := logger.Component("cron"); l != nil {
		l.Debug(msg, keysAndValues...)
	}
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if l := logger.Component("cron"); l != nil {
		l.Error(msg, append(keysAndValues, "error", err)...)
	}
}

// Nop is a Scheduler that never delivers anything. It stands in when
// reminders are unavailable for the session.
type Nop struct{}

func (Nop) RequestPermission(context.Context) bool { return false }
func (Nop) Schedule(models.NotificationFrequency, models.SobrietyProfile) error {
	return nil
}
func (Nop) CancelAll() {}
func (Nop) ScheduleMilestoneAlert(models.HealthMilestone, time.Time) error {
	return nil
}
