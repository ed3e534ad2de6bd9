// Package scheduler drives the periodic snapshot capture.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/usecase"
	xlogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/queue"
)

// Scheduler runs the snapshot capture on a cron spec. With a queue attached
// the capture is enqueued and a worker performs it; without one it runs
// inline.
type Scheduler struct {
	cron   *cron.Cron
	snaps  *usecase.SnapshotsUseCase
	queue  queue.Publisher
	logger *xlogger.Logger
}

func New(snaps *usecase.SnapshotsUseCase, q queue.Publisher, logger *xlogger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		snaps:  snaps,
		queue:  q,
		logger: logger,
	}
}

// Register adds the capture task under the given cron spec.
func (s *Scheduler) Register(captureSpec string) error {
	if _, err := s.cron.AddFunc(captureSpec, s.captureTask); err != nil {
		return fmt.Errorf("register capture task: %w", err)
	}
	return nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron loop and waits for a running capture to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunCaptureNow executes one capture immediately, bypassing the queue, so a
// fresh deployment has history before the first tick.
func (s *Scheduler) RunCaptureNow() {
	s.capture()
}

func (s *Scheduler) captureTask() {
	if s.queue != nil {
		err := s.queue.Publish(context.Background(), KindSnapshotCapture, CapturePayload{})
		if err != nil {
			s.logger.Error("enqueue snapshot capture", xlogger.Error(err))
		}
		return
	}
	s.capture()
}

func (s *Scheduler) capture() {
	n, err := s.snaps.Capture(context.Background())
	if err != nil {
		s.logger.Error("snapshot capture failed", xlogger.Error(err))
		return
	}
	s.logger.Info("snapshot capture complete", xlogger.Int("indices", n))
}
