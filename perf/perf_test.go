package perf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/everybit"
	"github.com/hupe1980/everybit/internal/ktiming"
	"github.com/hupe1980/everybit/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock makes the rotation of tier k take (k+1)*step.
func steppingClock(step time.Duration) ktiming.Clock {
	var calls int
	var now ktiming.Mark
	return ktiming.ClockFunc(func() ktiming.Mark {
		if calls%2 == 1 {
			now += ktiming.Mark((calls/2 + 1) * int(step))
		}
		calls++
		return now
	})
}

func TestFib(t *testing.T) {
	assert.Len(t, fib, 53)
	assert.Equal(t, uint64(1), fib[0])
	assert.Equal(t, uint64(2), fib[1])
	assert.Equal(t, uint64(86267571272), fib[52])
	for i := 2; i < len(fib); i++ {
		require.Equal(t, fib[i-2]+fib[i-1], fib[i], "index %d", i)
	}
	assert.Equal(t, 50, MaxTiers)
}

func TestGeometry(t *testing.T) {
	offset, shift, length, size := Geometry(0)
	assert.Equal(t, []uint64{1, 2, 3, 5}, []uint64{offset, shift, length, size})

	offset, shift, length, size = Geometry(10)
	assert.Equal(t, []uint64{144, 233, 377, 610}, []uint64{offset, shift, length, size})

	// Every tier's range fits its array.
	for k := 0; k < MaxTiers; k++ {
		offset, _, length, size := Geometry(k)
		require.LessOrEqual(t, offset+length, size, "tier %d", k)
	}
}

func TestTimedRotation_StopsAtBudget(t *testing.T) {
	metrics := &everybit.BasicMetricsCollector{}

	res, err := TimedRotation(context.Background(), 5*time.Millisecond,
		WithClock(steppingClock(time.Millisecond)),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Best)
	require.Len(t, res.Tiers, 5)
	for k, tier := range res.Tiers {
		assert.Equal(t, k, tier.Index)
		assert.Equal(t, time.Duration(k+1)*time.Millisecond, tier.Elapsed)
		assert.Equal(t, k == 4, tier.Exceeded, "tier %d", k)

		offset, shift, length, size := Geometry(k)
		assert.Equal(t, offset, tier.Offset)
		assert.Equal(t, shift, tier.Shift)
		assert.Equal(t, length, tier.Length)
		assert.Equal(t, size, tier.Size)
		assert.Equal(t, length/8, tier.Bytes)
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(5), stats.TierCount)
	assert.Equal(t, int64(1), stats.TierExceeded)
	assert.Equal(t, int64(3), stats.MaxTier)
	assert.Equal(t, int64(5), stats.AllocCount)
	assert.Equal(t, int64(5), stats.RotateCount)
}

func TestTimedRotation_NothingWithinBudget(t *testing.T) {
	res, err := TimedRotation(context.Background(), 0,
		WithClock(ktiming.ClockFunc(func() ktiming.Mark { return 0 })),
	)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Best)
	require.Len(t, res.Tiers, 1)
	assert.True(t, res.Tiers[0].Exceeded)
}

func TestTimedRotation_MaxTiers(t *testing.T) {
	res, err := TimedRotation(context.Background(), time.Hour,
		WithClock(steppingClock(time.Microsecond)),
		WithMaxTiers(12),
	)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Best)
	assert.Len(t, res.Tiers, 12)
}

func TestTimedRotation_AllocationFailure(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 16})

	res, err := TimedRotation(context.Background(), time.Hour,
		WithClock(ktiming.ClockFunc(func() ktiming.Mark { return 0 })),
		WithResourceController(rc),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, everybit.ErrAllocation)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Contains(t, err.Error(), "tier 7")

	// Tiers 0-6 fit in 128 bits; tier 7 needs 144.
	assert.Equal(t, 6, res.Best)
	assert.Len(t, res.Tiers, 7)
	assert.Zero(t, rc.MemoryUsage())
}

func TestTimedRotation_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := TimedRotation(ctx, time.Second)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, res.Best)
	assert.Empty(t, res.Tiers)
}

func TestTimedRotation_Progress(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf))

	_, err := TimedRotation(context.Background(), 3*time.Millisecond,
		WithClock(steppingClock(time.Millisecond)),
		WithProgress(&buf),
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "TIER SIZE(B)         #SHIFTS         TIME(s)   ", lines[0])
	assert.Equal(t, "0    0               2               0.001000", lines[1])
	assert.Equal(t, "2    1               5               0.003000 exceeded 0.00s cutoff", lines[3])
}

func TestApplyOptions_Defaults(t *testing.T) {
	opts := applyOptions([]Option{nil})
	assert.Equal(t, int64(DefaultSeed), opts.seed)
	assert.NotNil(t, opts.clock)
	assert.NotNil(t, opts.logger)
	assert.Len(t, opts.arrayOpts, 3)
}

func TestTimedRotation_Seed(t *testing.T) {
	// Content does not change the measured geometry.
	clock := func() Option { return WithClock(steppingClock(time.Millisecond)) }

	a, err := TimedRotation(context.Background(), 4*time.Millisecond, clock())
	require.NoError(t, err)
	b, err := TimedRotation(context.Background(), 4*time.Millisecond, clock(), WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTimedRotation_RealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timed run in short mode")
	}

	res, err := TimedRotation(context.Background(), Short)
	require.NoError(t, err)
	require.NotEmpty(t, res.Tiers)
	assert.Equal(t, len(res.Tiers)-2, res.Best)
	assert.True(t, res.Tiers[len(res.Tiers)-1].Exceeded)
}
