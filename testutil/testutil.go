package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
// It makes *RNG usable as an everybit.RandSource.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// BitString returns a random string of n '0'/'1' characters.
func (r *RNG) BitString(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = '0' + byte(r.rand.Intn(2))
	}
	return string(buf)
}

// RotateArgs returns a random valid rotation for an array of n bits:
// offset+length <= n and |shift| up to three times the length, with either sign.
func (r *RNG) RotateArgs(n int) (offset, length int, shift int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n == 0 {
		return 0, 0, r.rand.Int63n(7) - 3
	}
	offset = r.rand.Intn(n + 1)
	length = r.rand.Intn(n - offset + 1)
	span := int64(3*length + 1)
	shift = r.rand.Int63n(2*span+1) - span
	return offset, length, shift
}

// RotateString rotates s[offset:offset+length] right by shift places
// (left when negative) by building the result character by character.
func RotateString(s string, offset, length int, shift int64) string {
	if length == 0 {
		return s
	}
	k := int(shift % int64(length))
	if k < 0 {
		k += length
	}
	seg := s[offset : offset+length]
	out := []byte(s)
	for i := 0; i < length; i++ {
		out[offset+(i+k)%length] = seg[i]
	}
	return string(out)
}
