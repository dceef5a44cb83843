package services

import (
	"context"
	"log"
	"time"

	"shutterdesk/internal/schedule"

	"github.com/robfig/cron/v3"
)

// batchTimeout caps a whole dispatch run so a wedged provider cannot hold
// the scheduler slot past the next trigger.
const batchTimeout = 10 * time.Minute

// ReminderWorker triggers the daily dispatch batch on a cron schedule,
// evaluated in the studio's timezone.
type ReminderWorker struct {
	service  *ReminderService
	cron     *cron.Cron
	cronSpec string
	logger   *log.Logger
}

// NewReminderWorker creates a worker that runs the dispatch batch per the
// given cron spec (e.g. "0 8 * * *" for 08:00 studio time every day).
func NewReminderWorker(service *ReminderService, logger *log.Logger, cronSpec string) *ReminderWorker {
	return &ReminderWorker{
		service:  service,
		cron:     cron.New(cron.WithLocation(schedule.Location())),
		cronSpec: cronSpec,
		logger:   logger,
	}
}

// Start registers the dispatch job and starts the scheduler loop.
func (w *ReminderWorker) Start() error {
	if _, err := w.cron.AddFunc(w.cronSpec, w.runOnce); err != nil {
		return err
	}
	w.cron.Start()
	w.logger.Printf("reminders: dispatch scheduled (%q, %s)", w.cronSpec, schedule.Location())
	return nil
}

// Stop halts the scheduler and waits for an in-flight run to finish.
func (w *ReminderWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *ReminderWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if err := w.service.ProcessDailyReminders(ctx); err != nil {
		w.logger.Printf("reminders: daily dispatch run failed: %v", err)
	}
}
