package ktiming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMark_Monotone(t *testing.T) {
	prev := GetMark()
	for i := 0; i < 1000; i++ {
		cur := GetMark()
		assert.GreaterOrEqual(t, uint64(cur), uint64(prev))
		prev = cur
	}
}

func TestGetMark_CountsWork(t *testing.T) {
	start := GetMark()
	x := 0
	for i := 0; i < 5_000_000; i++ {
		x += i % 7
	}
	end := GetMark()
	assert.NotZero(t, x)
	assert.Greater(t, DiffNanos(start, end), uint64(0))
}

func TestDiff(t *testing.T) {
	assert.Equal(t, uint64(1500), DiffNanos(500, 2000))
	assert.Equal(t, uint64(0), DiffNanos(2000, 500))
	assert.Equal(t, 1500*time.Nanosecond, Diff(500, 2000))
	assert.InDelta(t, 1.5, DiffSeconds(0, 1_500_000_000), 1e-12)
}

func TestClockFunc(t *testing.T) {
	var n Mark
	c := ClockFunc(func() Mark {
		n += 10
		return n
	})
	assert.Equal(t, Mark(10), c.Now())
	assert.Equal(t, Mark(20), c.Now())
}

func TestMonotonicMark(t *testing.T) {
	a := monotonicMark()
	time.Sleep(time.Millisecond)
	b := monotonicMark()
	assert.GreaterOrEqual(t, Diff(a, b), time.Millisecond)
}
