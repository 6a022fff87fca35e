package batch

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"tcncore/internal/providers"
	"tcncore/internal/structures"
)

type SchedulerInterface interface {
	Init()
	Stop()
	Drain() error
}

// Scheduler drives the periodic batch flush. opsMu serializes timer
// flushes with the final drain on shutdown.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	manager *TcnBatchManager
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Batch.FlushInterval

	s.cron.AddFunc(gron.Every(interval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		if err := s.manager.Flush(); err != nil {
			s.metrics.IncFlushErrors()
			s.logger.Errorf(providers.TypeApp, "Error while flushing tcn batch: %s", err)
			return
		}
		s.metrics.ObserveFlushDuration(time.Since(start))
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Drain flushes whatever is still pending, used on shutdown.
func (s *Scheduler) Drain() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Draining tcn batch...")
	if err := s.manager.Flush(); err != nil {
		s.metrics.IncFlushErrors()
		s.logger.Errorf(providers.TypeApp, "Error while draining tcn batch: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, manager *TcnBatchManager, metrics providers.MetricsProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		manager: manager,
		metrics: metrics,
	}
}
