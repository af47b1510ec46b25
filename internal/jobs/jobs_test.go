package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"orderlifecycle/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlusher struct{ mock.Mock }

func (m *MockFlusher) Flush(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockFlusher) Pending() int {
	return m.Called().Int(0)
}

type MockJob struct{ mock.Mock }

func (m *MockJob) Name() string { return m.Called().String(0) }
func (m *MockJob) Start() error { return m.Called().Error(0) }
func (m *MockJob) Stop() { m.Called() }

func TestNotificationFlushJob_Run(t *testing.T) {
	t.Run("skips_empty_queue", func(t *testing.T) {
		flusher := new(MockFlusher)
		flusher.On("Pending").Return(0)

		jobs.NewNotificationFlushJob(flusher, "", nil).Run()

		flusher.AssertNotCalled(t, "Flush", mock.Anything)
	})

	t.Run("flushes_pending_messages", func(t *testing.T) {
		flusher := new(MockFlusher)
		flusher.On("Pending").Return(3)
		flusher.On("Flush", mock.Anything).Return(2, errors.New("one failed")).Once()

		jobs.NewNotificationFlushJob(flusher, "", nil).Run()

		flusher.AssertExpectations(t)
	})
}

func TestNotificationFlushJob_StartRejectsBadSpec(t *testing.T) {
	flusher := new(MockFlusher)
	job := jobs.NewNotificationFlushJob(flusher, "not a cron spec", nil)

	require.Error(t, job.Start())
}

func TestNotificationFlushJob_RunsOnScheduleAndDrainsOnStop(t *testing.T) {
	var flushes atomic.Int32
	flusher := new(MockFlusher)
	flusher.On("Pending").Return(1)
	flusher.On("Flush", mock.Anything).Run(func(mock.Arguments) { flushes.Add(1) }).Return(1, nil)

	job := jobs.NewNotificationFlushJob(flusher, "* * * * * *", nil)
	require.NoError(t, job.Start())

	require.Eventually(t, func() bool { return flushes.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	before := flushes.Load()
	job.Stop()
	assert.Greater(t, flushes.Load(), before, "Stop drains the queue once more")
}

func TestJobManager_StartAllRollsBackOnFailure(t *testing.T) {
	first, second := new(MockJob), new(MockJob)
	first.On("Name").Return("first").Maybe()
	first.On("Start").Return(nil)
	first.On("Stop").Return().Once()
	second.On("Name").Return("second")
	second.On("Start").Return(errors.New("bad spec"))

	jm := jobs.NewJobManager(nil, first, second)
	err := jm.StartAll()

	require.ErrorContains(t, err, "failed to start second job: bad spec")
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAllStopsInReverseOrder(t *testing.T) {
	var order []string
	first, second := new(MockJob), new(MockJob)
	first.On("Start").Return(nil)
	second.On("Start").Return(nil)
	first.On("Stop").Run(func(mock.Arguments) { order = append(order, "first") }).Return()
	second.On("Stop").Run(func(mock.Arguments) { order = append(order, "second") }).Return()

	jm := jobs.NewJobManager(nil, first, second)
	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"second", "first"}, order)
}
