package perf

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/everybit"
	"github.com/hupe1980/everybit/internal/conv"
	"github.com/hupe1980/everybit/internal/ktiming"
)

// Preset budgets.
const (
	Short  = 10 * time.Millisecond
	Medium = 100 * time.Millisecond
	Large  = time.Second
)

// DefaultSeed seeds the random content of every tier.
const DefaultSeed = 6172

// fib drives the tier geometry.
var fib = [...]uint64{
	1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597, 2584,
	4181, 6765, 10946, 17711, 28657, 46368, 75025, 121393, 196418, 317811,
	514229, 832040, 1346269, 2178309, 3524578, 5702887, 9227465, 14930352,
	24157817, 39088169, 63245986, 102334155, 165580141, 267914296, 433494437,
	701408733, 1134903170, 1836311903, 2971215073, 4807526976, 7778742049,
	12586269025, 20365011074, 32951280099, 53316291173, 86267571272,
}

// MaxTiers is the number of tiers the progression defines.
const MaxTiers = len(fib) - 3

// Geometry returns the rotation parameters and array size of tier k.
func Geometry(k int) (offset, shift, length, size uint64) {
	return fib[k], fib[k+1], fib[k+2], fib[k+3]
}

// Tier is one measured rotation.
type Tier struct {
	Index    int           `json:"tier"`
	Size     uint64        `json:"size_bits"`
	Offset   uint64        `json:"offset"`
	Length   uint64        `json:"length"`
	Bytes    uint64        `json:"bytes"`
	Shift    uint64        `json:"shifts"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Exceeded bool          `json:"exceeded"`
}

// Result is the outcome of a timed rotation run.
type Result struct {
	Budget time.Duration `json:"budget_ns"`
	// Best is the last tier that finished within Budget, -1 if none did.
	Best  int    `json:"best"`
	Tiers []Tier `json:"tiers"`
}

// TimedRotation measures tiers in order until one takes at least budget, the
// progression ends, or ctx is canceled.
//
// An allocation failure ends the run with an error matching
// everybit.ErrAllocation; the result still holds the tiers measured so far.
func TimedRotation(ctx context.Context, budget time.Duration, optFns ...Option) (*Result, error) {
	opts := applyOptions(optFns)
	res := &Result{Budget: budget, Best: -1}

	limit := MaxTiers
	if opts.maxTiers > 0 && opts.maxTiers < limit {
		limit = opts.maxTiers
	}

	for k := 0; k < limit; k++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		tier, err := runTier(k, budget, opts)
		if err != nil {
			return res, fmt.Errorf("tier %d: %w", k, err)
		}
		res.Tiers = append(res.Tiers, tier)

		opts.metrics.RecordTier(k, tier.Elapsed, tier.Exceeded)
		opts.logger.LogTier(ctx, k, tier.Bytes, tier.Shift, tier.Elapsed, tier.Exceeded)
		if opts.progress != nil {
			if err := writeRow(opts.progress, tier, budget); err != nil {
				return res, fmt.Errorf("write progress: %w", err)
			}
		}

		if tier.Exceeded {
			break
		}
		res.Best = k
	}
	return res, nil
}

func runTier(k int, budget time.Duration, opts options) (Tier, error) {
	offset, shift, length, size := Geometry(k)

	ba, err := everybit.New(size, opts.arrayOpts...)
	if err != nil {
		return Tier{}, err
	}
	defer ba.Free()

	if err := ba.RandFill(rand.New(rand.NewSource(opts.seed))); err != nil {
		return Tier{}, err
	}

	amount, err := conv.Uint64ToInt64(shift)
	if err != nil {
		return Tier{}, err
	}

	start := opts.clock.Now()
	err = ba.Rotate(offset, length, amount)
	end := opts.clock.Now()
	if err != nil {
		return Tier{}, err
	}

	elapsed := ktiming.Diff(start, end)
	return Tier{
		Index:    k,
		Size:     size,
		Offset:   offset,
		Length:   length,
		Bytes:    length / 8,
		Shift:    shift,
		Elapsed:  elapsed,
		Exceeded: elapsed >= budget,
	}, nil
}
