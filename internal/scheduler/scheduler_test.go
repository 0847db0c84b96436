package scheduler

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewScheduler(nil, nil, nil, nil, 2026, log)
}

func TestStartRequiresScheduledJobs(t *testing.T) {
	s := testScheduler()

	err := s.Start()
	assert.ErrorContains(t, err, "no jobs scheduled")
	assert.False(t, s.IsRunning())
}

func TestScheduleRejectsInvalidCronExpression(t *testing.T) {
	s := testScheduler()

	err := s.ScheduleRefresh("not a cron expression")
	assert.ErrorContains(t, err, "failed to add refresh job")
}

func TestStartAndStopLifecycle(t *testing.T) {
	s := testScheduler()

	require.NoError(t, s.ScheduleRefresh("0 6 * * *"))
	require.NoError(t, s.SchedulePredict("0 9 * * *"))
	require.NoError(t, s.ScheduleRatingsRebuild("0 4 * * 1"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())

	// Starting twice is an error; scheduling while running is too.
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleRefresh("0 7 * * *"))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())

	// Stopping a stopped scheduler is a no-op.
	require.NoError(t, s.Stop())
}
