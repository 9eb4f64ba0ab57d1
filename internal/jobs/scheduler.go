package jobs

import (
	"context"

	"anoa.com/hrpayroll/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background housekeeping jobs. Currently a single job:
// the nightly contract status refresh.
type Scheduler struct {
	cron      *cron.Cron
	contracts service.ContractService
	schedule  string
}

func NewScheduler(contracts service.ContractService, schedule string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		contracts: contracts,
		schedule:  schedule,
	}
}

func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RefreshContracts(); err != nil {
			zap.L().Error("contract refresh job failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Error("failed to schedule contract refresh", zap.String("schedule", s.schedule), zap.Error(err))
		return
	}

	s.cron.Start()
	zap.L().Info("scheduler started", zap.String("contract_refresh", s.schedule))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RefreshContracts re-derives every contract's status and time remaining.
// Exposed so the refresh can also be triggered on demand.
func (s *Scheduler) RefreshContracts() error {
	return s.contracts.RefreshAll(context.Background())
}
