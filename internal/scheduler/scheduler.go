// Package scheduler periodically scans the notes for due checkpoints
// and sends a reminder for each of them.
package scheduler

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/example/studynotes/internal/logging"
	"github.com/example/studynotes/internal/notify"
	"github.com/example/studynotes/internal/revision"
	"github.com/example/studynotes/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default notification settings
const (
	DefaultInterval              = 60 * time.Second
	DefaultInitialDelay          = 2 * time.Second
	DefaultNotificationStartHour = 0
	DefaultNotificationEndHour   = 23
)

// Source provides the notes to scan.
type Source interface {
	Notes() []models.Note
}

// Config controls when the poller runs and whether it notifies.
type Config struct {
	Enabled      bool
	Interval     time.Duration
	InitialDelay time.Duration
	// Notifications are only sent when the local hour is within
	// [StartHour, EndHour].
	StartHour int
	EndHour   int
}

// DefaultConfig polls every minute, starting two seconds after Start,
// at any hour.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Interval:     DefaultInterval,
		InitialDelay: DefaultInitialDelay,
		StartHour:    DefaultNotificationStartHour,
		EndHour:      DefaultNotificationEndHour,
	}
}

// Poller manages the scheduled reminder scans.
type Poller struct {
	scheduler *gocron.Scheduler
	source    Source
	notifier  notify.Notifier
	cfg       Config
	enabled   atomic.Bool
	now       func() time.Time
	log       *log.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Poller) { p.log = l }
}

// New creates a poller. A nil notifier makes every scan a no-op.
func New(source Source, notifier notify.Notifier, cfg Config, opts ...Option) *Poller {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	p := &Poller{
		scheduler: s,
		source:    source,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.enabled.Store(cfg.Enabled)
	return p
}

// SetEnabled turns notifications on or off without stopping the poller.
func (p *Poller) SetEnabled(on bool) {
	p.enabled.Store(on)
}

// Enabled reports whether notifications are on.
func (p *Poller) Enabled() bool {
	return p.enabled.Load()
}

// Start schedules the periodic scan and one initial scan after
// InitialDelay, then returns.
func (p *Poller) Start() error {
	if p.cfg.Interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", p.cfg.Interval)
	}

	job := p.scheduler.Every(p.cfg.Interval)
	if p.cfg.InitialDelay > 0 {
		job = job.WaitForSchedule()
	}
	if _, err := job.Do(p.tick); err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}

	if p.cfg.InitialDelay > 0 {
		_, err := p.scheduler.Every(p.cfg.InitialDelay).WaitForSchedule().LimitRunsTo(1).Do(p.tick)
		if err != nil {
			return fmt.Errorf("failed to schedule initial reminder check: %w", err)
		}
	}

	p.scheduler.StartAsync()
	p.log.Printf("[INFO] Reminder poller started, checking every %s\n", p.cfg.Interval)
	return nil
}

// Stop terminates all scheduled scans.
func (p *Poller) Stop() {
	p.scheduler.Stop()
	p.log.Println("[INFO] Reminder poller stopped")
}

func (p *Poller) tick() {
	p.Check(p.now())
}

// Check runs one scan at now and returns the number of notifications
// delivered. Delivery errors are logged and otherwise ignored.
func (p *Poller) Check(now time.Time) int {
	if !p.Enabled() || p.notifier == nil {
		return 0
	}

	hour := now.Hour()
	if hour < p.cfg.StartHour || hour > p.cfg.EndHour {
		p.log.Printf("[DEBUG] Current hour %d is outside notification hours (%d-%d), skipping reminders\n",
			hour, p.cfg.StartHour, p.cfg.EndHour)
		return 0
	}

	sent := 0
	for _, r := range revision.DueReminders(p.source.Notes(), models.DateOf(now)) {
		if err := p.notifier.Notify(revision.ReminderTitle, r.Body()); err != nil {
			p.log.Printf("[DEBUG] Reminder for note %d (%s) not delivered: %v\n", r.NoteID, r.Label, err)
			continue
		}
		sent++
	}
	if sent > 0 {
		p.log.Printf("[INFO] Sent %d revision reminders\n", sent)
	}
	return sent
}
