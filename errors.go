package everybit

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an index or range lies outside the bit array.
	ErrOutOfRange = errors.New("bit index out of range")

	// ErrAllocation is returned when storage for a bit array cannot be obtained.
	ErrAllocation = errors.New("bit array allocation failed")

	// ErrFreed is returned when a bit array is used after Free.
	ErrFreed = errors.New("bit array already freed")

	// ErrInvalidBitString is returned when a bit string contains characters other than '0' and '1'.
	ErrInvalidBitString = errors.New("invalid bit string")
)

// RangeError reports a precondition violation on an index or a sub-range.
//
// It matches ErrOutOfRange via errors.Is.
type RangeError struct {
	Op     string
	Index  uint64 // offending index (Get, Set) or range offset (Rotate)
	Length uint64 // range length; zero for single-bit operations
	Size   uint64 // bit size of the array
}

func (e *RangeError) Error() string {
	if e.Op == "rotate" {
		return fmt.Sprintf("%s: range [%d, %d+%d) exceeds bit size %d", e.Op, e.Index, e.Index, e.Length, e.Size)
	}
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Size)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// AllocationError reports that storage for a bit array could not be obtained.
//
// It matches ErrAllocation via errors.Is. The underlying cause
// (if any) is reachable through errors.Is and errors.As as well.
type AllocationError struct {
	BitSize uint64
	Bytes   uint64
	cause   error
}

func (e *AllocationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("allocate %d bits (%d bytes): %v", e.BitSize, e.Bytes, e.cause)
	}
	return fmt.Sprintf("allocate %d bits (%d bytes): out of memory", e.BitSize, e.Bytes)
}

func (e *AllocationError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrAllocation}
	}
	return []error{ErrAllocation, e.cause}
}

// BitStringError reports the first invalid character of a bit string.
type BitStringError struct {
	Pos  int
	Char rune
}

func (e *BitStringError) Error() string {
	return fmt.Sprintf("invalid bit string: %q at position %d", e.Char, e.Pos)
}

func (e *BitStringError) Unwrap() error { return ErrInvalidBitString }
