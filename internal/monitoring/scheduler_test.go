package monitoring

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingConfirmer struct {
	calls atomic.Int32
}

func (c *countingConfirmer) ConfirmPlantings() int {
	c.calls.Add(1)
	return 1
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(&countingConfirmer{}, "every minute")
	assert.Error(t, err)
}

func TestRunDueFollowsSchedule(t *testing.T) {
	target := &countingConfirmer{}
	s, err := NewScheduler(target, "@every 1m")
	require.NoError(t, err)

	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.nextRun = s.schedule.Next(start)

	assert.False(t, s.runDue(start.Add(30*time.Second)))
	assert.True(t, s.runDue(start.Add(time.Minute)))
	assert.False(t, s.runDue(start.Add(90*time.Second)))
	assert.True(t, s.runDue(start.Add(2*time.Minute)))
	assert.Equal(t, int32(2), target.calls.Load())
}

func TestOnConfirmedReportsCount(t *testing.T) {
	s, err := NewScheduler(&countingConfirmer{}, "@every 1m")
	require.NoError(t, err)

	var got []int
	s.OnConfirmed(func(n int) { got = append(got, n) })
	assert.True(t, s.runDue(time.Now()))
	assert.Equal(t, []int{1}, got)
}

func TestRunAndStop(t *testing.T) {
	target := &countingConfirmer{}
	s, err := NewScheduler(target, "@every 1s")
	require.NoError(t, err)
	s.tick = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	assert.Eventually(t, func() bool { return target.calls.Load() > 0 }, 3*time.Second, 10*time.Millisecond)
	s.Stop()
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
