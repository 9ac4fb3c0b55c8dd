package jobs

import (
	"schoolhub-backend/internal/config"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/repository"
	"schoolhub-backend/internal/service"
)

// JobRunner coordinates the scheduled circulation jobs
type JobRunner struct {
	itemRepo    repository.ItemRepository
	loanRepo    repository.LoanRepository
	circulation service.CirculationService
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(itemRepo repository.ItemRepository, loanRepo repository.LoanRepository, circulation service.CirculationService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		itemRepo:    itemRepo,
		loanRepo:    loanRepo,
		circulation: circulation,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReportOverdueLoans()
	jr.ReconcileItemAvailability()
}
