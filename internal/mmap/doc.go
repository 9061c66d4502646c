// Package mmap provides memory mappings for off-heap bit storage and
// zero-copy reads of local script files.
//
// # Usage
//
//	// Read-only view of a file.
//	m, err := mmap.Open("tests/default")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
//	// Zeroed, writable words outside the Go heap.
//	a, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... } // ENOMEM surfaces here instead of crashing the process
//	defer a.Close()
//	words := a.Words()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2), with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile for files, VirtualAlloc for
//     anonymous memory (Advise is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must ensure
// no goroutine touches Bytes or Words after Close returns.
package mmap
