package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"CoinbasePremium/internal/model"
)

// Job is one premium collection run.
type Job interface {
	Run(ctx context.Context) (*model.RunSummary, error)
}

// Scheduler runs the job on a cron expression for daemon deployments.
type Scheduler struct {
	Cron *cron.Cron
	Job  Job
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler. Runs never overlap: a tick that
// fires while the previous run is still going is skipped.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Job: job,
		Ctx: ctx,
	}
}

// Register schedules the job on spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.fetchTask); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the job immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.fetchTask()
}

func (s *Scheduler) fetchTask() {
	if s.Ctx.Err() != nil {
		return
	}
	log.Println("[INFO] running fetch task")
	summary, err := s.Job.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] fetch task: %v", err)
		return
	}
	log.Printf("[INFO] fetch task done: %s, premium %s", summary.Status, summary.Action)
}
