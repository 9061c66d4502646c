// Package conv provides checked integer conversions.
//
// Bit indices and sizes are uint64 throughout everybit while slice lengths,
// rotation amounts and byte limits are int or int64; these helpers reject values
// that do not survive the conversion.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
