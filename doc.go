// Package everybit provides a packed bit array with in-place sub-range rotation.
//
// A BitArray stores N bits in ceil(N/64) 64-bit words, most significant bit
// first within each word, so bit 0 of the array is the leftmost character of
// its string form. Get and Set are O(1); Rotate rotates any contiguous range
// in O(length) time with O(1) extra memory by three in-place reversals.
//
// # Quick Start
//
//	ba, _ := everybit.ParseBits("10010110")
//	defer ba.Free()
//
//	_ = ba.Rotate(0, ba.Len(), -1) // left-rotate the whole array by one
//	fmt.Println(ba)                // 00101101
//
//	_ = ba.Rotate(2, 5, 2)         // right-rotate bits [2, 7) by two
//
// # Errors
//
// Out-of-range indices and ranges are reported as *RangeError (matching
// ErrOutOfRange) instead of corrupting memory. New reports storage that
// cannot be obtained as *AllocationError (matching ErrAllocation). Any use of
// an array after Free returns ErrFreed.
//
// # Storage
//
// Arrays whose storage reaches DefaultOffHeapThreshold bytes are placed in an
// anonymous memory mapping so that exhausting memory is an error rather than
// a runtime abort. WithResourceController accounts storage against a shared
// memory budget.
//
// # Concurrency
//
// A BitArray must not be used from several goroutines without external
// synchronization. Distinct arrays share no mutable state.
//
// # Related Packages
//
//   - script: the line-oriented test-script interpreter
//   - perf: the Fibonacci-tiered timed rotation driver
//   - blobstore: local, in-memory, S3 and MinIO script and report storage
//   - resource: memory, worker and IO limits
package everybit
