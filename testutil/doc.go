// Package testutil provides testing utilities for everybit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator, random bit strings, and a naive
// string-based rotation used as ground truth for the packed implementation.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	s := rng.BitString(100)           // "0110..." of length 100
//	off, length, shift := rng.RotateArgs(100)
//
// # Ground Truth
//
//	want := testutil.RotateString(s, off, length, shift)
package testutil
