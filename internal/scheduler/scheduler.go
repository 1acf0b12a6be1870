package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/config"
	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const (
	reportTimeout = 2 * time.Minute
	stopTimeout   = 5 * time.Second
)

// ReportGenerator renders the periodic leaderboard message.
type ReportGenerator interface {
	GenerateLeaderboardReport(ctx context.Context, now time.Time) (string, error)
}

// Notifier delivers outbound messages.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler runs the game clock and the periodic leaderboard report on one cron instance.
type Scheduler struct {
	cron       *cron.Cron
	cronLogger cron.Logger
	interval   time.Duration
	reportSpec string
	recipient  string
	reports    ReportGenerator
	notifier   Notifier
	logger     *zap.Logger

	mu      sync.Mutex
	tickID  cron.EntryID
	ticking bool
}

// NewScheduler creates a new scheduler instance. reports and notifier may be nil, in which
// case no report job is registered.
func NewScheduler(cfg config.Config, reports ReportGenerator, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Game.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.Game.TickInterval)
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Reporting.Timezone, err)
	}
	if _, err := cron.ParseStandard(cfg.Reporting.CronSchedule); err != nil {
		return nil, fmt.Errorf("parse report schedule %q: %w", cfg.Reporting.CronSchedule, err)
	}

	cronLogger := zapCronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	return &Scheduler{
		cron:       c,
		cronLogger: cronLogger,
		interval:   cfg.Game.TickInterval,
		reportSpec: cfg.Reporting.CronSchedule,
		recipient:  cfg.WhatsApp.ReportRecipient,
		reports:    reports,
		notifier:   notifier,
		logger:     logger,
	}, nil
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Duration("tick_interval", s.interval))

	if s.reports != nil && s.notifier != nil && s.recipient != "" {
		if _, err := s.cron.AddFunc(s.reportSpec, s.sendLeaderboardReport); err != nil {
			s.logger.Error("failed to schedule leaderboard report", zap.Error(err))
		} else {
			s.logger.Info("leaderboard report scheduled", zap.String("schedule", s.reportSpec))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits briefly for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	ctx := s.cron.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(stopTimeout):
		s.logger.Warn("scheduler jobs still running after stop timeout")
	}
}

// StartTicking schedules job at the tick interval. It returns false when a tick job is
// already registered.
func (s *Scheduler) StartTicking(job func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticking {
		return false
	}

	wrapped := cron.NewChain(cron.SkipIfStillRunning(s.cronLogger)).Then(cron.FuncJob(job))
	s.tickID = s.cron.Schedule(fixedInterval(s.interval), wrapped)
	s.ticking = true
	return true
}

// StopTicking removes the tick job. Calling it while idle is a no-op.
func (s *Scheduler) StopTicking() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ticking {
		return
	}
	s.cron.Remove(s.tickID)
	s.ticking = false
}

// Ticking reports whether a tick job is registered.
func (s *Scheduler) Ticking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticking
}

func (s *Scheduler) sendLeaderboardReport() {
	s.logger.Info("generating leaderboard report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report, err := s.reports.GenerateLeaderboardReport(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to generate leaderboard report", zap.Error(err))
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.recipient,
		Message: report,
	}

	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send leaderboard report", zap.Error(err))
	} else {
		s.logger.Info("leaderboard report sent successfully")
	}
}

// fixedInterval fires every d. cron.Every rounds to whole seconds, which is too coarse
// for the game clock.
type fixedInterval time.Duration

func (f fixedInterval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(f))
}

type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
