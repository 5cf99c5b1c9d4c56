package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/config"
	"github.com/tacovision/backend/internal/service/inventory"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	inventorySvc *inventory.Service
	cfg          config.BudgetConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone so the weekly budget rollover matches the store's local
// week boundary.
func NewScheduler(cfg config.BudgetConfig, inventorySvc *inventory.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		inventorySvc: inventorySvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("rollover_cron", s.cfg.RolloverCron))

	if _, err := s.cron.AddFunc(s.cfg.RolloverCron, s.rolloverBudget); err != nil {
		s.logger.Error("failed to schedule budget rollover", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) rolloverBudget() {
	s.logger.Info("running weekly budget rollover")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.inventorySvc.RolloverBudget(ctx); err != nil {
		s.logger.Error("budget rollover failed", zap.Error(err))
	}
}
