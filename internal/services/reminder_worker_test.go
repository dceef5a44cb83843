package services

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderWorkerStartStop(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService(t)

	worker := NewReminderWorker(svc, log.New(io.Discard, "", 0), "0 8 * * *")
	require.NoError(t, worker.Start())
	worker.Stop()
}

func TestReminderWorkerRejectsInvalidCronSpec(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTestService(t)

	worker := NewReminderWorker(svc, log.New(io.Discard, "", 0), "not a cron spec")
	assert.Error(t, worker.Start())
}
