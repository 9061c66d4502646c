package everybit

// Rotate rotates the bits in [offset, offset+length) right by shift places.
// A negative shift rotates left.
//
// The rotation reverses [offset, q), then [q, offset+length), then the whole
// range, where q is the first bit that ends up at offset. It uses no extra
// memory and touches each bit of the range a bounded number of times.
//
// Rotate returns an error matching ErrOutOfRange when offset+length exceeds Len.
func (ba *BitArray) Rotate(offset, length uint64, shift int64) error {
	if ba.words == nil {
		return ErrFreed
	}
	end := offset + length
	if end < offset || end > ba.bitSz {
		return &RangeError{Op: "rotate", Index: offset, Length: length, Size: ba.bitSz}
	}
	if length == 0 {
		return nil
	}

	s := floorMod(shift, length)
	if s == 0 {
		return nil
	}

	p := offset
	r := end - 1
	q := r - s + 1

	ba.reverse(p, q-1)
	ba.reverse(q, r)
	ba.reverse(p, r)

	ba.metrics.RecordRotate(length)
	return nil
}

// reverse reverses the bits in the closed range [i, j] in place.
func (ba *BitArray) reverse(i, j uint64) {
	words := ba.words
	for i < j {
		wi, mi := locate(i)
		wj, mj := locate(j)
		// Swapping two bits is a no-op unless they differ, and then it is a
		// flip of both.
		if (words[wi]&mi == 0) != (words[wj]&mj == 0) {
			words[wi] ^= mi
			words[wj] ^= mj
		}
		i++
		j--
	}
}

// floorMod returns x mod y in [0, y), rounding the quotient toward negative
// infinity so that a negative x yields the matching left rotation.
// floorMod(x, 0) is 0.
func floorMod(x int64, y uint64) uint64 {
	if y == 0 {
		return 0
	}
	if x >= 0 {
		return uint64(x) % y
	}
	// -(x+1) cannot overflow, even for math.MinInt64.
	m := (uint64(-(x+1)) + 1) % y
	if m == 0 {
		return 0
	}
	return y - m
}
