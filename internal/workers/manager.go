package workers

import (
	"context"

	"pulsehub/internal/config"
	"pulsehub/internal/domain"
	"pulsehub/internal/logger"
)

type Manager struct {
	cfg *config.Config
	log logger.Logger

	scheduler *Scheduler
	events    domain.EventRepository
}

func NewManager(cfg *config.Config, log logger.Logger, scheduler *Scheduler, events domain.EventRepository) *Manager {
	return &Manager{
		cfg: cfg,
		log: log,

		scheduler: scheduler,
		events:    events,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.log.Info("worker: manager started")

	m.scheduler.RunDaily(ctx, DailySchedule{Hour: 3, Minute: 0}, &EventRetentionWorker{
		events:    m.events,
		retention: m.cfg.EventRetention,
		log:       m.log,
	})
}
