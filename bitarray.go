package everybit

import (
	"context"
	"fmt"

	"github.com/hupe1980/everybit/internal/conv"
	"github.com/hupe1980/everybit/internal/mmap"
	"github.com/hupe1980/everybit/resource"
)

// BitArray is a fixed-length sequence of bits packed into 64-bit words.
//
// A BitArray is not safe for concurrent use. Distinct arrays share no
// mutable state and may be used from different goroutines.
type BitArray struct {
	bitSz uint64
	// words is nil once the array has been freed.
	words []uint64

	// mapping holds the words when they live off-heap.
	mapping *mmap.Mapping
	// grant is the number of bytes reserved from controller.
	grant      int64
	controller *resource.Controller

	logger  *Logger
	metrics MetricsCollector
}

// RandSource supplies pseudorandom words to RandFill.
// *math/rand.Rand and *testutil.RNG satisfy it.
type RandSource interface {
	Uint64() uint64
}

// New allocates a bit array of bitSz zero bits.
//
// At least one word is allocated even when bitSz is zero; such an array has
// no valid index and every rotation of it is a no-op.
//
// New fails with an error matching ErrAllocation when the storage cannot be
// obtained; no partially constructed array is returned.
func New(bitSz uint64, optFns ...Option) (*BitArray, error) {
	opts := applyOptions(optFns)

	ba, offHeap, err := allocate(bitSz, opts)
	opts.metricsCollector.RecordAlloc(bitSz, offHeap, err)
	opts.logger.LogAlloc(context.Background(), bitSz, offHeap, err)
	if err != nil {
		return nil, err
	}
	return ba, nil
}

func allocate(bitSz uint64, opts options) (*BitArray, bool, error) {
	numWords := bitSz / WordBits
	if bitSz%WordBits != 0 {
		numWords++
	}
	if numWords == 0 {
		numWords = 1
	}

	numBytes, err := conv.MulUint64(numWords, 8)
	if err != nil {
		return nil, false, &AllocationError{BitSize: bitSz, cause: err}
	}
	size, err := conv.Uint64ToInt(numBytes)
	if err != nil {
		return nil, false, &AllocationError{BitSize: bitSz, Bytes: numBytes, cause: err}
	}

	if err := opts.controller.TryAcquireMemory(int64(size)); err != nil {
		return nil, false, &AllocationError{BitSize: bitSz, Bytes: numBytes, cause: err}
	}

	ba := &BitArray{
		bitSz:      bitSz,
		grant:      int64(size),
		controller: opts.controller,
		logger:     opts.logger,
		metrics:    opts.metricsCollector,
	}

	offHeap := opts.offHeapThreshold >= 0 && size >= opts.offHeapThreshold
	if !offHeap {
		ba.words = make([]uint64, numWords)
		return ba, false, nil
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		opts.controller.ReleaseMemory(int64(size))
		return nil, true, &AllocationError{BitSize: bitSz, Bytes: numBytes, cause: err}
	}
	ba.mapping = m
	ba.words = m.Words()
	return ba, true, nil
}

// Free releases the storage of ba. Every later call on ba, including a
// second Free, returns ErrFreed.
func (ba *BitArray) Free() error {
	if ba.words == nil {
		return ErrFreed
	}
	ba.words = nil

	var err error
	if ba.mapping != nil {
		err = ba.mapping.Close()
		ba.mapping = nil
	}
	ba.controller.ReleaseMemory(ba.grant)
	ba.grant = 0

	ba.logger.LogFree(context.Background(), ba.bitSz, err)
	return err
}

// Len returns the number of bits in ba. It never changes, not even after Free.
func (ba *BitArray) Len() uint64 {
	return ba.bitSz
}

// Get reports whether bit i is set.
func (ba *BitArray) Get(i uint64) (bool, error) {
	if ba.words == nil {
		return false, ErrFreed
	}
	if i >= ba.bitSz {
		return false, &RangeError{Op: "get", Index: i, Size: ba.bitSz}
	}
	return ba.get(i), nil
}

// Set sets bit i to v.
func (ba *BitArray) Set(i uint64, v bool) error {
	if ba.words == nil {
		return ErrFreed
	}
	if i >= ba.bitSz {
		return &RangeError{Op: "set", Index: i, Size: ba.bitSz}
	}
	ba.set(i, v)
	return nil
}

// MustGet is like Get but panics on error.
func (ba *BitArray) MustGet(i uint64) bool {
	v, err := ba.Get(i)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet is like Set but panics on error.
func (ba *BitArray) MustSet(i uint64, v bool) {
	if err := ba.Set(i, v); err != nil {
		panic(err)
	}
}

// RandFill overwrites all storage words, including the padding past Len,
// with values drawn from src.
func (ba *BitArray) RandFill(src RandSource) error {
	if ba.words == nil {
		return ErrFreed
	}
	for i := range ba.words {
		ba.words[i] = src.Uint64()
	}
	return nil
}

// OffHeap reports whether the storage of ba lives outside the Go heap.
func (ba *BitArray) OffHeap() bool {
	return ba.mapping != nil
}

// GoString implements fmt.GoStringer.
func (ba *BitArray) GoString() string {
	return fmt.Sprintf("everybit.BitArray{Len: %d, Words: %d}", ba.bitSz, len(ba.words))
}

func (ba *BitArray) get(i uint64) bool {
	w, m := locate(i)
	return ba.words[w]&m != 0
}

// set clears the bit with the complement of its mask, then ORs the mask back
// in when v is true.
func (ba *BitArray) set(i uint64, v bool) {
	w, m := locate(i)
	x := ba.words[w] &^ m
	if v {
		x |= m
	}
	ba.words[w] = x
}
