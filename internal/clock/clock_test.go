package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFakeRunsInDueOrder(t *testing.T) {
	c := NewFake()
	var order []string
	c.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(99 * time.Millisecond)
	assert.Empty(t, order)
	assert.Equal(t, 3, c.Pending())

	c.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, c.Pending())
	assert.Equal(t, 1100*time.Millisecond, c.Elapsed())
}

func TestFakeStop(t *testing.T) {
	c := NewFake()
	ran := false
	tm := c.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Minute)
	assert.False(t, ran)
}

func TestFakeChainedCallbacks(t *testing.T) {
	c := NewFake()
	var hits []time.Duration
	c.AfterFunc(time.Second, func() {
		hits = append(hits, c.Elapsed())
		c.AfterFunc(time.Second, func() { hits = append(hits, c.Elapsed()) })
	})
	c.Advance(5 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, hits)
}

func TestSlotReplacesPending(t *testing.T) {
	c := NewFake()
	s := NewSlot(c)
	var got []int
	s.Schedule(time.Second, func() { got = append(got, 1) })
	s.Schedule(time.Second, func() { got = append(got, 2) })
	assert.True(t, s.Pending())
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Second)
	assert.Equal(t, []int{2}, got)
	assert.False(t, s.Pending())
}

func TestSlotStop(t *testing.T) {
	c := NewFake()
	s := NewSlot(c)
	ran := false
	s.Schedule(time.Second, func() { ran = true })
	s.Stop()
	c.Advance(time.Minute)
	assert.False(t, ran)
	assert.False(t, s.Pending())
	s.Stop()
}

func TestSlotCallbackMayReschedule(t *testing.T) {
	c := NewFake()
	s := NewSlot(c)
	n := 0
	var tick func()
	tick = func() {
		n++
		if n < 3 {
			s.Schedule(time.Second, tick)
		}
	}
	s.Schedule(time.Second, tick)
	c.Advance(10 * time.Second)
	assert.Equal(t, 3, n)
}

func TestSlotRealScheduler(t *testing.T) {
	s := NewSlot(nil)
	var fired atomic.Bool
	done := make(chan struct{})
	s.Schedule(5*time.Millisecond, func() {
		fired.Store(true)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "real timer did not fire")
	}
	assert.True(t, fired.Load())

	s.Schedule(time.Hour, func() { t.Error("stopped timer fired") })
	s.Stop()
}
