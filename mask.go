package everybit

// WordBits is the number of bits per storage word.
const WordBits = 64

// maskTable maps a bit-within-word position to the mask isolating it.
// Position 0 is the most significant bit so that the word layout matches the
// left-to-right order of a bit string.
var maskTable = buildMaskTable()

// buildMaskTable is pure; calling it again yields an identical table.
func buildMaskTable() [WordBits]uint64 {
	var t [WordBits]uint64
	t[WordBits-1] = 1
	for p := WordBits - 2; p >= 0; p-- {
		t[p] = t[p+1] << 1
	}
	return t
}

// mask returns the single-bit mask for position p (0 <= p < WordBits).
//
//go:nosplit
func mask(p uint64) uint64 {
	return maskTable[p&(WordBits-1)]
}

// locate returns the word index and mask addressing bit i.
//
//go:nosplit
func locate(i uint64) (word uint64, m uint64) {
	return i / WordBits, mask(i % WordBits)
}
